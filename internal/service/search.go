package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"moodspots/internal/config"
	"moodspots/internal/model"
)

// OutcomeKind classifies the result of one gateway search
type OutcomeKind int

// Outcome kinds
const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeEmpty
	OutcomeFallback
	OutcomeValidationError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeEmpty:
		return "empty"
	case OutcomeFallback:
		return "fallback"
	case OutcomeValidationError:
		return "validation_error"
	default:
		return fmt.Sprintf("outcome(%d)", int(k))
	}
}

// FallbackCause says why live data could not be obtained
type FallbackCause int

// Fallback causes. Network, timeout, status and payload failures are all upstream.
const (
	CauseConfiguration FallbackCause = iota + 1
	CauseUpstream
)

// LocationRequiredMessage is shown when a search arrives without a location
const LocationRequiredMessage = "Location is required to find nearby places. Please enable location access."

// NoPlacesMessage is shown when the provider succeeded with zero usable places
const NoPlacesMessage = "No places found nearby. Try a different mood or location."

// Fallback carries the diagnostic for a fallback outcome
type Fallback struct {
	Cause  FallbackCause
	Detail string
}

// SearchOutcome is the typed result of PlacesService.Search
type SearchOutcome struct {
	Kind       OutcomeKind
	Places     []model.Place
	Fallback   *Fallback
	Message    string // user-facing text for validation and empty outcomes
	SearchID   string
	Provider   string
	Categories []string
	Took       int64 // milliseconds
}

// SearchLogger records searches and feedback for analytics
type SearchLogger interface {
	LogSearch(ctx context.Context, entry *model.SearchLog) error
	LogFeedback(ctx context.Context, searchID, placeID, action string) error
}

// PlacesService is the places gateway: mood lookup, one provider call, normalization
type PlacesService struct {
	provider     PlacesProvider
	searchLog    SearchLogger
	radiusMeters int
	limit        int
	timeout      time.Duration
}

// NewPlacesService creates a new places service. searchLog may be nil.
func NewPlacesService(provider PlacesProvider, searchLog SearchLogger, cfg *config.PlacesConfig) *PlacesService {
	limit := cfg.ResultLimit
	if limit <= 0 || limit > config.MaxResultLimit {
		limit = config.MaxResultLimit
	}
	return &PlacesService{
		provider:     provider,
		searchLog:    searchLog,
		radiusMeters: cfg.RadiusMeters,
		limit:        limit,
		timeout:      cfg.ProviderTimeout(),
	}
}

// ProviderName returns the name of the configured provider
func (s *PlacesService) ProviderName() string {
	return s.provider.Name()
}

// Search finds places for a mood around a location. It never returns an error:
// every expected failure is reported through the outcome kind.
func (s *PlacesService) Search(ctx context.Context, mood string, location *model.Location) *SearchOutcome {
	startTime := time.Now()

	outcome := &SearchOutcome{
		SearchID: uuid.New().String(),
		Provider: s.provider.Name(),
	}

	if location == nil {
		outcome.Kind = OutcomeValidationError
		outcome.Message = LocationRequiredMessage
		return outcome
	}

	m := model.Mood(mood)
	if _, known := model.ParseMood(mood); !known {
		log.Printf("Unknown mood %q, using default category", mood)
	}

	categories := s.provider.Vocabulary().Lookup(m)
	outcome.Categories = categories

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raws, err := s.provider.SearchNearby(callCtx, SearchQuery{
		Category:     categories[0],
		Categories:   categories,
		Center:       *location,
		RadiusMeters: s.radiusMeters,
		Limit:        s.limit,
	})
	if err != nil {
		outcome.Kind = OutcomeFallback
		outcome.Fallback = s.classify(callCtx, err)
		log.Printf("⚠️  %s search failed (%s): %s", s.provider.Name(), mood, outcome.Fallback.Detail)
	} else {
		places := make([]model.Place, 0, len(raws))
		for _, raw := range raws {
			places = append(places, NormalizePlace(raw, *location, m))
		}
		if len(places) > s.limit {
			places = places[:s.limit]
		}

		outcome.Places = places
		if len(places) == 0 {
			outcome.Kind = OutcomeEmpty
			outcome.Message = NoPlacesMessage
		} else {
			outcome.Kind = OutcomeSuccess
		}
	}

	outcome.Took = time.Since(startTime).Milliseconds()
	s.record(mood, *location, outcome)

	return outcome
}

// LogFeedback records a user action. It reports false when no search log is configured.
func (s *PlacesService) LogFeedback(ctx context.Context, searchID, placeID, action string) (bool, error) {
	if s.searchLog == nil {
		return false, nil
	}
	if err := s.searchLog.LogFeedback(ctx, searchID, placeID, action); err != nil {
		return false, err
	}
	return true, nil
}

func (s *PlacesService) classify(ctx context.Context, err error) *Fallback {
	if errors.Is(err, ErrMissingCredential) {
		return &Fallback{
			Cause:  CauseConfiguration,
			Detail: displayName(s.provider.Name()) + " API key not configured",
		}
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &Fallback{
			Cause:  CauseUpstream,
			Detail: fmt.Sprintf("%s did not respond within %s", displayName(s.provider.Name()), s.timeout),
		}
	}
	return &Fallback{Cause: CauseUpstream, Detail: err.Error()}
}

// record writes the search log row without blocking the response
func (s *PlacesService) record(mood string, location model.Location, outcome *SearchOutcome) {
	if s.searchLog == nil {
		return
	}

	entry := &model.SearchLog{
		SearchID:       outcome.SearchID,
		Mood:           mood,
		Lat:            location.Lat,
		Lng:            location.Lng,
		Provider:       outcome.Provider,
		Categories:     model.JSONArray(outcome.Categories),
		Outcome:        outcome.Kind.String(),
		ResultCount:    len(outcome.Places),
		PlaceIDs:       make(model.JSONArray, 0, len(outcome.Places)),
		ResponseTimeMs: outcome.Took,
	}
	for _, p := range outcome.Places {
		entry.PlaceIDs = append(entry.PlaceIDs, p.ID)
	}

	go func() {
		if err := s.searchLog.LogSearch(context.Background(), entry); err != nil {
			log.Printf("Failed to log search %s: %v", entry.SearchID, err)
		}
	}()
}

func displayName(provider string) string {
	if provider == "" {
		return "Places provider"
	}
	return strings.ToUpper(provider[:1]) + provider[1:]
}
