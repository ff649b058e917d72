package service

import (
	"strings"

	"moodspots/internal/model"
	"moodspots/internal/utils"
)

// Price tiers used when a provider gives no price level.
// These are estimates derived from the mood and category tags, not measured values.
const (
	PriceTierLow      = 1
	PriceTierMid      = 2
	PriceTierHigh     = 3
	PriceTierLuxury   = 4
	defaultPriceLevel = PriceTierMid
)

// NormalizePlace turns a raw provider record into a Place relative to origin
func NormalizePlace(raw RawPlace, origin model.Location, mood model.Mood) model.Place {
	distance := utils.Distance(origin, raw.Location)

	place := model.Place{
		ID:           raw.ID,
		Name:         raw.Name,
		Address:      raw.Address,
		Distance:     distance,
		DistanceText: utils.FormatMiles(distance),
		IsOpen:       true,
		OpeningHours: raw.OpeningHours,
		PhotoURL:     raw.PhotoURL,
		Types:        raw.Types,
		Location:     raw.Location,
	}

	if raw.Rating != nil && *raw.Rating > 0 {
		place.Rating = *raw.Rating
	}
	if raw.TotalRatings != nil && *raw.TotalRatings > 0 {
		place.TotalRatings = *raw.TotalRatings
	}
	if raw.OpenNow != nil {
		place.IsOpen = *raw.OpenNow
	}
	if place.Types == nil {
		place.Types = []string{}
	}
	if place.PhotoURL != nil && *place.PhotoURL == "" {
		place.PhotoURL = nil
	}

	level := DerivePriceLevel(raw.PriceLevel, raw.Types, mood)
	place.PriceLevel = &level

	return place
}

// DerivePriceLevel returns the provider's price level when present. Otherwise it
// estimates one: fancy is high, budget and quick-bite are low, then fine dining or
// fast food category hints, then the mid tier.
func DerivePriceLevel(providerLevel *int, types []string, mood model.Mood) int {
	if providerLevel != nil {
		return *providerLevel
	}

	switch mood {
	case model.MoodFancy:
		return PriceTierHigh
	case model.MoodBudget, model.MoodQuickBite:
		return PriceTierLow
	}

	if hasTypeContaining(types, "fine_dining") {
		return PriceTierLuxury
	}
	if hasTypeContaining(types, "fast_food") {
		return PriceTierLow
	}
	return defaultPriceLevel
}

func hasTypeContaining(types []string, fragment string) bool {
	for _, t := range types {
		if strings.Contains(t, fragment) {
			return true
		}
	}
	return false
}
