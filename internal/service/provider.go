package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"moodspots/internal/config"
	"moodspots/internal/model"
)

// ErrMissingCredential is returned by a provider whose API key is not configured.
// Providers return it before any network call is attempted.
var ErrMissingCredential = errors.New("provider credential not configured")

// PlacesProvider is the interface for places-search backends
type PlacesProvider interface {
	// Name identifies the provider in logs and search records
	Name() string

	// Vocabulary returns the mood to category table in this provider's tag vocabulary
	Vocabulary() model.CategoryTable

	// SearchNearby runs one nearby search and maps provider records into RawPlace
	SearchNearby(ctx context.Context, q SearchQuery) ([]RawPlace, error)
}

// SearchQuery is the provider-agnostic shape of one upstream call
type SearchQuery struct {
	Category     string   // primary category, the one sent upstream
	Categories   []string // full ordered list for the mood
	Center       model.Location
	RadiusMeters int
	Limit        int
}

// RawPlace is one provider record after field mapping but before normalization.
// Nil pointers mean the provider gave no value.
type RawPlace struct {
	ID           string
	Name         string
	Address      string
	Location     model.Location
	Rating       *float64
	TotalRatings *int
	OpenNow      *bool
	OpeningHours *string
	PriceLevel   *int
	PhotoURL     *string
	Types        []string
}

// NewProvider builds the provider selected by configuration
func NewProvider(cfg *config.PlacesConfig) (PlacesProvider, error) {
	httpClient := &http.Client{Timeout: cfg.ProviderTimeout()}

	switch cfg.Provider {
	case config.ProviderGeoapify:
		return NewGeoapifyProvider(cfg.GeoapifyBaseURL, cfg.GeoapifyAPIKey, httpClient), nil
	case config.ProviderGoogle:
		return NewGoogleProvider(cfg.GoogleEndpoint, cfg.GoogleAPIKey), nil
	case config.ProviderOverpass:
		return NewOverpassProvider(cfg.OverpassURL, httpClient), nil
	default:
		return nil, fmt.Errorf("unknown places provider %q", cfg.Provider)
	}
}
