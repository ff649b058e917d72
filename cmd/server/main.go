package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"moodspots/internal/config"
	"moodspots/internal/handler"
	"moodspots/internal/repository"
	"moodspots/internal/service"

	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Print version info
	log.Printf("Moodspots Places Gateway")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Optional search log
	var searchLog service.SearchLogger
	if cfg.PostgreSQL.Enabled {
		repo, err := repository.NewPostgresRepository(
			cfg.PostgreSQL.DSN,
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer repo.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = repo.EnsureSchema(ctx)
		cancel()
		if err != nil {
			log.Fatalf("Failed to prepare search log: %v", err)
		}

		searchLog = repo
		log.Println("✅ Connected to PostgreSQL database (search log enabled)")
	} else {
		log.Println("⚠️  No DATABASE_URL set - searches and feedback will not be logged")
	}

	// Places provider
	provider, err := service.NewProvider(&cfg.Places)
	if err != nil {
		log.Fatalf("Failed to create places provider: %v", err)
	}
	log.Printf("✅ Places provider: %s", provider.Name())
	log.Printf("   - Radius: %d m", cfg.Places.RadiusMeters)
	log.Printf("   - Result limit: %d", cfg.Places.ResultLimit)
	log.Printf("   - Timeout: %s", cfg.Places.ProviderTimeout())
	switch {
	case cfg.Places.Provider == config.ProviderGeoapify && cfg.Places.GeoapifyAPIKey == "",
		cfg.Places.Provider == config.ProviderGoogle && cfg.Places.GoogleAPIKey == "":
		log.Println("⚠️  Provider API key is not set - every search will return the fallback signal")
	}

	// Initialize services and handlers
	placesService := service.NewPlacesService(provider, searchLog, &cfg.Places)
	placesHandler := handler.NewPlacesHandler(placesService)
	feedbackHandler := handler.NewFeedbackHandler(placesService)

	router := handler.NewRouter(&cfg.Server, placesHandler, feedbackHandler, handler.BuildInfo{
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
	})

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	log.Printf("🚀 Starting server on %s", addr)
	log.Printf("📝 API: http://localhost:%d/api/v1", cfg.Server.Port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped")
}
