package service

import (
	"math"
	"testing"

	"moodspots/internal/model"
	"moodspots/internal/utils"
)

func intPtr(v int) *int {
	return &v
}

func float64Ptr(v float64) *float64 {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}

func stringPtr(v string) *string {
	return &v
}

func TestNormalizePlace_Defaults(t *testing.T) {
	origin := model.Location{Lat: 12.93, Lng: 80.11}
	raw := RawPlace{
		ID:       "p1",
		Name:     "Corner Cafe",
		Location: model.Location{Lat: 12.935, Lng: 80.115},
	}

	got := NormalizePlace(raw, origin, model.MoodCoffee)

	if got.Rating != 0 || got.TotalRatings != 0 {
		t.Errorf("rating defaults = %v/%d, want 0/0", got.Rating, got.TotalRatings)
	}
	if !got.IsOpen {
		t.Error("IsOpen should default to true when the provider gives no signal")
	}
	if got.Types == nil {
		t.Error("Types should be an empty slice, not nil")
	}
	if got.PhotoURL != nil {
		t.Errorf("PhotoURL = %v, want nil", *got.PhotoURL)
	}
	if got.PriceLevel == nil || *got.PriceLevel != PriceTierMid {
		t.Errorf("PriceLevel = %v, want mid tier", got.PriceLevel)
	}
	if got.DistanceText != "0.5 mi" {
		t.Errorf("DistanceText = %q, want %q", got.DistanceText, "0.5 mi")
	}
	if want := utils.Distance(origin, raw.Location); math.Abs(got.Distance-want) > 1e-9 {
		t.Errorf("Distance = %f, want %f", got.Distance, want)
	}
	if got.Location != raw.Location {
		t.Errorf("Location = %v, want %v", got.Location, raw.Location)
	}
}

func TestNormalizePlace_ProviderValues(t *testing.T) {
	raw := RawPlace{
		ID:           "p2",
		Name:         "Bistro",
		Address:      "1 Main St",
		Location:     model.Location{Lat: 1, Lng: 1},
		Rating:       float64Ptr(4.4),
		TotalRatings: intPtr(120),
		OpenNow:      boolPtr(false),
		OpeningHours: stringPtr("Mo-Su 12:00-22:00"),
		PriceLevel:   intPtr(4),
		PhotoURL:     stringPtr("https://img.example/p2.jpg"),
		Types:        []string{"restaurant"},
	}

	got := NormalizePlace(raw, model.Location{Lat: 1, Lng: 1}, model.MoodBudget)

	if got.Rating != 4.4 || got.TotalRatings != 120 {
		t.Errorf("rating = %v/%d", got.Rating, got.TotalRatings)
	}
	if got.IsOpen {
		t.Error("IsOpen should follow the provider's flag")
	}
	if got.OpeningHours == nil || *got.OpeningHours != "Mo-Su 12:00-22:00" {
		t.Errorf("OpeningHours = %v", got.OpeningHours)
	}
	if *got.PriceLevel != 4 {
		t.Errorf("provider price level should win over mood, got %d", *got.PriceLevel)
	}
	if got.PhotoURL == nil || *got.PhotoURL != "https://img.example/p2.jpg" {
		t.Errorf("PhotoURL = %v", got.PhotoURL)
	}
	if got.Distance != 0 || got.DistanceText != "0.0 mi" {
		t.Errorf("distance = %v (%s), want 0", got.Distance, got.DistanceText)
	}
}

func TestNormalizePlace_NegativeRatingClamped(t *testing.T) {
	raw := RawPlace{ID: "p", Rating: float64Ptr(-1), TotalRatings: intPtr(-5)}

	got := NormalizePlace(raw, model.Location{}, model.MoodWork)

	if got.Rating != 0 || got.TotalRatings != 0 {
		t.Errorf("negative provider values should clamp to 0, got %v/%d", got.Rating, got.TotalRatings)
	}
}

func TestDerivePriceLevel(t *testing.T) {
	tests := []struct {
		name     string
		provider *int
		types    []string
		mood     model.Mood
		want     int
	}{
		{"provider value wins", intPtr(0), []string{"catering.fast_food"}, model.MoodFancy, 0},
		{"fancy mood", nil, nil, model.MoodFancy, PriceTierHigh},
		{"budget mood", nil, []string{"catering.restaurant.fine_dining"}, model.MoodBudget, PriceTierLow},
		{"quick bite mood", nil, nil, model.MoodQuickBite, PriceTierLow},
		{"fine dining hint", nil, []string{"catering.restaurant.fine_dining"}, model.MoodDateNight, PriceTierLuxury},
		{"fast food hint", nil, []string{"fast_food_restaurant"}, model.MoodWork, PriceTierLow},
		{"mid tier default", nil, []string{"catering.cafe"}, model.MoodCoffee, PriceTierMid},
		{"unknown mood default", nil, nil, model.Mood("picnic"), PriceTierMid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DerivePriceLevel(tt.provider, tt.types, tt.mood); got != tt.want {
				t.Errorf("DerivePriceLevel() = %d, want %d", got, tt.want)
			}
		})
	}
}
