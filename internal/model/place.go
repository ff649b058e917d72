package model

// Location is a latitude/longitude pair in degrees
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place is the normalized venue returned to clients
type Place struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	Distance     float64  `json:"distance"` // miles from the search location
	DistanceText string   `json:"distanceText"`
	Rating       float64  `json:"rating"`
	TotalRatings int      `json:"totalRatings"`
	IsOpen       bool     `json:"isOpen"`
	OpeningHours *string  `json:"openingHours,omitempty"`
	PriceLevel   *int     `json:"priceLevel,omitempty"`
	PhotoURL     *string  `json:"photoUrl,omitempty"`
	Types        []string `json:"types"`
	Location     Location `json:"location"`
}

// SortOption selects the ranking key
type SortOption string

// Sort options
const (
	SortByDistance SortOption = "distance"
	SortByRating   SortOption = "rating"
)

// FilterOptions are the client-side filter and sort preferences
type FilterOptions struct {
	OpenNow bool       `json:"openNow"`
	SortBy  SortOption `json:"sortBy"`
}
