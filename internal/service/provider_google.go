package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	placesapi "google.golang.org/api/places/v1"

	"moodspots/internal/model"
)

// GoogleCategories maps moods to Google Places (New) place types
var GoogleCategories = model.CategoryTable{
	Default: "restaurant",
	ByMood: map[model.Mood][]string{
		model.MoodWork:      {"cafe", "library", "coffee_shop"},
		model.MoodDateNight: {"restaurant", "bar", "night_club"},
		model.MoodQuickBite: {"fast_food_restaurant", "restaurant", "bakery"},
		model.MoodBudget:    {"restaurant", "cafe", "bakery"},
		model.MoodCoffee:    {"coffee_shop", "cafe"},
		model.MoodFancy:     {"fine_dining_restaurant", "restaurant", "bar"},
	},
}

// googleFieldMask lists the place fields requested from searchNearby
const googleFieldMask = "places.id,places.displayName,places.formattedAddress,places.location," +
	"places.rating,places.userRatingCount,places.currentOpeningHours,places.priceLevel,places.types"

var googlePriceLevels = map[string]int{
	"PRICE_LEVEL_FREE":           0,
	"PRICE_LEVEL_INEXPENSIVE":    1,
	"PRICE_LEVEL_MODERATE":       2,
	"PRICE_LEVEL_EXPENSIVE":      3,
	"PRICE_LEVEL_VERY_EXPENSIVE": 4,
}

// GoogleProvider queries the Google Places API (New) nearby search
type GoogleProvider struct {
	endpoint string
	apiKey   string
}

// NewGoogleProvider creates a Google Places provider
func NewGoogleProvider(endpoint, apiKey string) *GoogleProvider {
	return &GoogleProvider{
		endpoint: endpoint,
		apiKey:   apiKey,
	}
}

// Name returns the provider name
func (p *GoogleProvider) Name() string {
	return "google"
}

// Vocabulary returns the Google place type table
func (p *GoogleProvider) Vocabulary() model.CategoryTable {
	return GoogleCategories
}

// SearchNearby runs places:searchNearby restricted to a circle around the center
func (p *GoogleProvider) SearchNearby(ctx context.Context, q SearchQuery) ([]RawPlace, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("google: %w", ErrMissingCredential)
	}

	opts := []option.ClientOption{option.WithAPIKey(p.apiKey)}
	if p.endpoint != "" {
		opts = append(opts, option.WithEndpoint(p.endpoint))
	}
	svc, err := placesapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("google: create client: %w", err)
	}

	req := &placesapi.GoogleMapsPlacesV1SearchNearbyRequest{
		IncludedTypes:  []string{q.Category},
		MaxResultCount: int64(q.Limit),
		RankPreference: "DISTANCE",
		LocationRestriction: &placesapi.GoogleMapsPlacesV1SearchNearbyRequestLocationRestriction{
			Circle: &placesapi.GoogleMapsPlacesV1Circle{
				Center: &placesapi.GoogleTypeLatLng{
					Latitude:  q.Center.Lat,
					Longitude: q.Center.Lng,
				},
				Radius: float64(q.RadiusMeters),
			},
		},
	}

	resp, err := svc.Places.SearchNearby(req).
		Fields(googleapi.Field(googleFieldMask)).
		Context(ctx).
		Do()
	if err != nil {
		var gErr *googleapi.Error
		if errors.As(err, &gErr) {
			return nil, fmt.Errorf("google places API error (status %d): %s", gErr.Code, gErr.Message)
		}
		return nil, fmt.Errorf("google places request failed: %s", redact(err.Error(), p.apiKey))
	}

	return parseGooglePlaces(resp.Places), nil
}

// parseGooglePlaces converts Places API (New) results into raw places
func parseGooglePlaces(results []*placesapi.GoogleMapsPlacesV1Place) []RawPlace {
	places := make([]RawPlace, 0, len(results))
	for _, r := range results {
		if r == nil || r.Location == nil {
			continue
		}

		name := "Unknown Place"
		if r.DisplayName != nil && r.DisplayName.Text != "" {
			name = r.DisplayName.Text
		}

		raw := RawPlace{
			ID:      r.Id,
			Name:    name,
			Address: r.FormattedAddress,
			Location: model.Location{
				Lat: r.Location.Latitude,
				Lng: r.Location.Longitude,
			},
			Types: r.Types,
		}

		if r.Rating > 0 {
			rating := r.Rating
			raw.Rating = &rating
		}
		if r.UserRatingCount > 0 {
			total := int(r.UserRatingCount)
			raw.TotalRatings = &total
		}
		if r.CurrentOpeningHours != nil {
			open := r.CurrentOpeningHours.OpenNow
			raw.OpenNow = &open
			if len(r.CurrentOpeningHours.WeekdayDescriptions) > 0 {
				hours := strings.Join(r.CurrentOpeningHours.WeekdayDescriptions, "; ")
				raw.OpeningHours = &hours
			}
		}
		if level, ok := googlePriceLevels[r.PriceLevel]; ok {
			raw.PriceLevel = &level
		}

		places = append(places, raw)
	}
	return places
}
