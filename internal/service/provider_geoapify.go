package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"moodspots/internal/model"
)

// GeoapifyCategories maps moods to Geoapify Places categories
var GeoapifyCategories = model.CategoryTable{
	Default: "catering.restaurant",
	ByMood: map[model.Mood][]string{
		model.MoodWork:      {"catering.cafe", "office.coworking", "service.library"},
		model.MoodDateNight: {"catering.restaurant", "catering.bar", "entertainment.nightclub"},
		model.MoodQuickBite: {"catering.fast_food", "catering.restaurant", "catering.bakery"},
		model.MoodBudget:    {"catering.restaurant", "catering.cafe", "catering.bakery"},
		model.MoodCoffee:    {"catering.cafe", "catering.coffee"},
		model.MoodFancy:     {"catering.restaurant.fine_dining", "catering.restaurant", "catering.bar"},
	},
}

// GeoapifyProvider queries the Geoapify Places API
type GeoapifyProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewGeoapifyProvider creates a Geoapify provider
func NewGeoapifyProvider(baseURL, apiKey string, httpClient *http.Client) *GeoapifyProvider {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &GeoapifyProvider{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// Name returns the provider name
func (p *GeoapifyProvider) Name() string {
	return "geoapify"
}

// Vocabulary returns the Geoapify category table
func (p *GeoapifyProvider) Vocabulary() model.CategoryTable {
	return GeoapifyCategories
}

type geoapifyResponse struct {
	Features []geoapifyFeature `json:"features"`
	Message  string            `json:"message,omitempty"`
}

type geoapifyFeature struct {
	ID         string             `json:"id,omitempty"`
	Properties geoapifyProperties `json:"properties"`
	Geometry   *struct {
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry,omitempty"`
}

type geoapifyProperties struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	AddressLine1     string   `json:"address_line1"`
	AddressLine2     string   `json:"address_line2"`
	Formatted        string   `json:"formatted"`
	Categories       []string `json:"categories"`
	Lat              *float64 `json:"lat,omitempty"`
	Lon              *float64 `json:"lon,omitempty"`
	OpeningHours     string   `json:"opening_hours,omitempty"`
	Rating           *float64 `json:"rating,omitempty"`
	UserRatingsTotal *int     `json:"user_ratings_total,omitempty"`
	Datasource       struct {
		Raw struct {
			OpeningHours string `json:"opening_hours,omitempty"`
		} `json:"raw"`
	} `json:"datasource"`
}

// SearchNearby fetches places of the primary category around the center
func (p *GeoapifyProvider) SearchNearby(ctx context.Context, q SearchQuery) ([]RawPlace, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("geoapify: %w", ErrMissingCredential)
	}

	lng := strconv.FormatFloat(q.Center.Lng, 'f', -1, 64)
	lat := strconv.FormatFloat(q.Center.Lat, 'f', -1, 64)

	params := url.Values{}
	params.Set("categories", q.Category)
	params.Set("filter", fmt.Sprintf("circle:%s,%s,%d", lng, lat, q.RadiusMeters))
	params.Set("bias", fmt.Sprintf("proximity:%s,%s", lng, lat))
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("apiKey", p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("geoapify: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		// url.Error embeds the full URL, which carries the key
		return nil, fmt.Errorf("geoapify request failed: %s", redact(err.Error(), p.apiKey))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("geoapify: read body: %w", err)
	}

	var gResp geoapifyResponse
	decodeErr := json.Unmarshal(body, &gResp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil && gResp.Message != "" {
			return nil, fmt.Errorf("geoapify API error: %s", gResp.Message)
		}
		return nil, fmt.Errorf("geoapify returned status %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("geoapify: malformed payload: %w", decodeErr)
	}

	return parseGeoapifyFeatures(gResp.Features), nil
}

// parseGeoapifyFeatures converts GeoJSON features into raw places.
// Features without usable coordinates are skipped.
func parseGeoapifyFeatures(features []geoapifyFeature) []RawPlace {
	places := make([]RawPlace, 0, len(features))
	for _, f := range features {
		props := f.Properties

		loc, ok := geoapifyLocation(f)
		if !ok {
			continue
		}

		id := props.PlaceID
		if id == "" {
			id = f.ID
		}

		name := firstNonEmpty(props.Name, props.AddressLine1, "Unknown Place")
		address := firstNonEmpty(props.Formatted, props.AddressLine2)

		raw := RawPlace{
			ID:           id,
			Name:         name,
			Address:      address,
			Location:     loc,
			Rating:       props.Rating,
			TotalRatings: props.UserRatingsTotal,
			Types:        props.Categories,
		}

		if hours := firstNonEmpty(props.OpeningHours, props.Datasource.Raw.OpeningHours); hours != "" {
			open := !strings.Contains(strings.ToLower(hours), "closed")
			raw.OpenNow = &open
			raw.OpeningHours = &hours
		}

		places = append(places, raw)
	}
	return places
}

func geoapifyLocation(f geoapifyFeature) (model.Location, bool) {
	if f.Geometry != nil && len(f.Geometry.Coordinates) >= 2 {
		return model.Location{Lat: f.Geometry.Coordinates[1], Lng: f.Geometry.Coordinates[0]}, true
	}
	if f.Properties.Lat != nil && f.Properties.Lon != nil {
		return model.Location{Lat: *f.Properties.Lat, Lng: *f.Properties.Lon}, true
	}
	return model.Location{}, false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func redact(s, secret string) string {
	if secret == "" {
		return s
	}
	s = strings.ReplaceAll(s, url.QueryEscape(secret), "API_KEY_HIDDEN")
	return strings.ReplaceAll(s, secret, "API_KEY_HIDDEN")
}
