package handler

import (
	"net/http"

	"moodspots/internal/model"
	"moodspots/internal/service"

	"github.com/gin-gonic/gin"
)

var validActions = map[string]bool{
	"click":        true,
	"directions":   true,
	"view_details": true,
}

// FeedbackHandler handles feedback-related HTTP requests
type FeedbackHandler struct {
	placesService *service.PlacesService
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(placesService *service.PlacesService) *FeedbackHandler {
	return &FeedbackHandler{
		placesService: placesService,
	}
}

// Submit handles POST /api/v1/feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req model.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if !validActions[req.Action] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action. Must be one of: click, directions, view_details"})
		return
	}

	recorded, err := h.placesService.LogFeedback(c.Request.Context(), req.SearchID, req.PlaceID, req.Action)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log feedback: " + err.Error()})
		return
	}

	response := model.FeedbackResponse{
		Success: true,
		Message: "Feedback logged successfully",
	}
	if !recorded {
		response.Message = "Feedback acknowledged"
	}

	c.JSON(http.StatusOK, response)
}
