package service

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/serjvanilla/go-overpass"

	"moodspots/internal/model"
	"moodspots/internal/utils"
)

// OverpassCategories maps moods to OpenStreetMap amenity values
var OverpassCategories = model.CategoryTable{
	Default: "restaurant",
	ByMood: map[model.Mood][]string{
		model.MoodWork:      {"cafe", "library"},
		model.MoodDateNight: {"restaurant", "bar", "nightclub"},
		model.MoodQuickBite: {"fast_food", "restaurant"},
		model.MoodBudget:    {"restaurant", "cafe", "fast_food"},
		model.MoodCoffee:    {"cafe"},
		model.MoodFancy:     {"restaurant", "bar"},
	},
}

// overpassOverfetch widens the upstream limit so the nearest nodes survive the cap
const overpassOverfetch = 3

// OverpassProvider queries an OpenStreetMap Overpass endpoint. It needs no credential.
type OverpassProvider struct {
	client *overpass.Client
}

// NewOverpassProvider creates an Overpass provider
func NewOverpassProvider(endpoint string, httpClient *http.Client) *OverpassProvider {
	client := overpass.NewWithSettings(endpoint, 2, httpClient)
	return &OverpassProvider{client: &client}
}

// Name returns the provider name
func (p *OverpassProvider) Name() string {
	return "overpass"
}

// Vocabulary returns the OSM amenity table
func (p *OverpassProvider) Vocabulary() model.CategoryTable {
	return OverpassCategories
}

// SearchNearby runs an around-filter node query for the primary amenity
func (p *OverpassProvider) SearchNearby(ctx context.Context, q SearchQuery) ([]RawPlace, error) {
	query := buildOverpassQuery(q)

	type queryResult struct {
		result overpass.Result
		err    error
	}
	done := make(chan queryResult, 1)

	// The client has no context support; abandon the call when ctx ends
	go func() {
		res, err := p.client.Query(query)
		done <- queryResult{result: res, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("overpass query abandoned: %w", ctx.Err())
	case r := <-done:
		if r.err != nil {
			return nil, fmt.Errorf("overpass query failed: %w", r.err)
		}
		return parseOverpassNodes(r.result, q.Center, q.Limit), nil
	}
}

func buildOverpassQuery(q SearchQuery) string {
	return fmt.Sprintf(
		"[out:json][timeout:10];node[\"amenity\"=\"%s\"](around:%d,%s,%s);out body %d;",
		q.Category,
		q.RadiusMeters,
		strconv.FormatFloat(q.Center.Lat, 'f', -1, 64),
		strconv.FormatFloat(q.Center.Lng, 'f', -1, 64),
		q.Limit*overpassOverfetch,
	)
}

// parseOverpassNodes converts named nodes into raw places, nearest first
func parseOverpassNodes(result overpass.Result, center model.Location, limit int) []RawPlace {
	places := make([]RawPlace, 0, len(result.Nodes))
	for _, node := range result.Nodes {
		name := node.Tags["name"]
		if name == "" {
			continue
		}

		raw := RawPlace{
			ID:       "osm:node/" + strconv.FormatInt(node.ID, 10),
			Name:     name,
			Address:  osmAddress(node.Tags),
			Location: model.Location{Lat: node.Lat, Lng: node.Lon},
			Types:    osmTypes(node.Tags),
		}

		if hours := node.Tags["opening_hours"]; hours != "" {
			open := !strings.Contains(strings.ToLower(hours), "closed")
			raw.OpenNow = &open
			raw.OpeningHours = &hours
		}

		places = append(places, raw)
	}

	// Nodes come back as a map; order by proximity with the id as tie-break
	sort.Slice(places, func(i, j int) bool {
		di := utils.Distance(center, places[i].Location)
		dj := utils.Distance(center, places[j].Location)
		if di != dj {
			return di < dj
		}
		return places[i].ID < places[j].ID
	})

	if limit > 0 && len(places) > limit {
		places = places[:limit]
	}
	return places
}

func osmAddress(tags map[string]string) string {
	street := strings.TrimSpace(tags["addr:housenumber"] + " " + tags["addr:street"])
	parts := []string{}
	for _, p := range []string{street, tags["addr:city"], tags["addr:postcode"]} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func osmTypes(tags map[string]string) []string {
	types := []string{}
	if amenity := tags["amenity"]; amenity != "" {
		types = append(types, amenity)
	}
	for _, c := range strings.Split(tags["cuisine"], ";") {
		if c = strings.TrimSpace(c); c != "" {
			types = append(types, "cuisine:"+c)
		}
	}
	return types
}
