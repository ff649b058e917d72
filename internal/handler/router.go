package handler

import (
	"log"
	"net/http"
	"strings"

	"moodspots/internal/config"
	"moodspots/internal/model"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// BuildInfo is reported by /health and /version
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// NewRouter builds the gin engine with middleware and all routes
func NewRouter(cfg *config.ServerConfig, places *PlacesHandler, feedback *FeedbackHandler, build BuildInfo) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(recoverToFallback))
	router.Use(cors.New(corsConfig(cfg)))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"service":    "moodspots",
			"provider":   places.placesService.ProviderName(),
			"version":    build.Version,
			"build_time": build.BuildTime,
			"git_commit": build.GitCommit,
		})
	})

	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    build.Version,
			"build_time": build.BuildTime,
			"git_commit": build.GitCommit,
		})
	})

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/moods", places.Moods)
		apiV1.POST("/places", places.Search)
		apiV1.POST("/places/rank", places.Rank)
		apiV1.POST("/feedback", feedback.Submit)
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return router
}

func corsConfig(cfg *config.ServerConfig) cors.Config {
	corsCfg := cors.DefaultConfig()
	if origins := cfg.CORSOrigins(); origins != nil {
		corsCfg.AllowOrigins = origins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsCfg.AllowHeaders = cfg.CORSHeaders()
	return corsCfg
}

// recoverToFallback turns a handler panic into the fallback shape so clients
// switch to substitute data instead of surfacing a 500
func recoverToFallback(c *gin.Context, err any) {
	log.Printf("❌ panic serving %s: %v", c.Request.URL.Path, err)
	c.AbortWithStatusJSON(http.StatusOK, model.FallbackResponse{
		UseMock: true,
		Error:   "internal server error",
	})
}
