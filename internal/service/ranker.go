package service

import (
	"sort"

	"moodspots/internal/model"
)

// Rank filters and orders places for display. It never mutates its input.
//
// With OpenNow set, closed places are dropped. The result is stable-sorted
// ascending by distance, or descending by rating when SortBy is rating; equal
// keys keep their input order. Unknown sort options sort by distance.
func Rank(places []model.Place, filters model.FilterOptions) []model.Place {
	results := make([]model.Place, 0, len(places))
	for _, p := range places {
		if filters.OpenNow && !p.IsOpen {
			continue
		}
		results = append(results, p)
	}

	if filters.SortBy == model.SortByRating {
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Rating > results[j].Rating
		})
	} else {
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Distance < results[j].Distance
		})
	}

	return results
}
