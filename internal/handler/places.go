package handler

import (
	"log"
	"net/http"

	"moodspots/internal/model"
	"moodspots/internal/service"

	"github.com/gin-gonic/gin"
)

// PlacesHandler handles places-related HTTP requests
type PlacesHandler struct {
	placesService *service.PlacesService
}

// NewPlacesHandler creates a new places handler
func NewPlacesHandler(placesService *service.PlacesService) *PlacesHandler {
	return &PlacesHandler{
		placesService: placesService,
	}
}

// Search handles POST /api/v1/places
func (h *PlacesHandler) Search(c *gin.Context) {
	var req model.PlacesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// The client already knows how to fall back, so a bad body is not a 4xx
		c.JSON(http.StatusOK, model.FallbackResponse{
			UseMock: true,
			Error:   "Invalid request: " + err.Error(),
		})
		return
	}

	outcome := h.placesService.Search(c.Request.Context(), req.Mood, req.Location)

	switch outcome.Kind {
	case service.OutcomeValidationError:
		c.JSON(http.StatusBadRequest, gin.H{"error": outcome.Message})

	case service.OutcomeFallback:
		resp := model.FallbackResponse{
			UseMock:  true,
			SearchID: outcome.SearchID,
			Seq:      req.Seq,
		}
		if outcome.Fallback.Cause == service.CauseConfiguration {
			resp.Message = outcome.Fallback.Detail
		} else {
			resp.Error = outcome.Fallback.Detail
		}
		c.JSON(http.StatusOK, resp)

	case service.OutcomeEmpty:
		c.JSON(http.StatusOK, model.PlacesResponse{
			Places:   []model.Place{},
			Message:  outcome.Message,
			SearchID: outcome.SearchID,
			Seq:      req.Seq,
			Took:     outcome.Took,
		})

	case service.OutcomeSuccess:
		places := outcome.Places
		if req.Filters != nil {
			places = service.Rank(places, *req.Filters)
		}
		c.JSON(http.StatusOK, model.PlacesResponse{
			Places:   places,
			SearchID: outcome.SearchID,
			Seq:      req.Seq,
			Took:     outcome.Took,
		})

	default:
		log.Printf("Unhandled search outcome %s", outcome.Kind)
		c.JSON(http.StatusOK, model.FallbackResponse{UseMock: true, Error: "unexpected search outcome"})
	}
}

// Rank handles POST /api/v1/places/rank
func (h *PlacesHandler) Rank(c *gin.Context) {
	var req model.RankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.RankResponse{
		Places: service.Rank(req.Places, req.Filters),
	})
}

// Moods handles GET /api/v1/moods
func (h *PlacesHandler) Moods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"moods":    model.Moods(),
		"provider": h.placesService.ProviderName(),
	})
}
