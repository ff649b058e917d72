package model

// PlacesRequest is the inbound body of POST /api/v1/places
type PlacesRequest struct {
	Mood     string         `json:"mood"`
	Location *Location      `json:"location"`
	Filters  *FilterOptions `json:"filters,omitempty"`
	Seq      *int64         `json:"seq,omitempty"` // echoed back so clients can drop stale responses
}

// PlacesResponse is returned when live data was obtained (possibly empty)
type PlacesResponse struct {
	Places   []Place `json:"places"`
	Message  string  `json:"message,omitempty"`
	SearchID string  `json:"searchId,omitempty"`
	Seq      *int64  `json:"seq,omitempty"`
	Took     int64   `json:"tookMs"`
}

// FallbackResponse tells the client to use substitute data.
// Message is set for configuration problems, Error for upstream failures.
type FallbackResponse struct {
	UseMock  bool   `json:"useMock"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
	SearchID string `json:"searchId,omitempty"`
	Seq      *int64 `json:"seq,omitempty"`
}

// RankRequest is the body of POST /api/v1/places/rank
type RankRequest struct {
	Places  []Place       `json:"places"`
	Filters FilterOptions `json:"filters"`
}

// RankResponse is the ranked list
type RankResponse struct {
	Places []Place `json:"places"`
}

// FeedbackRequest represents a user action on a returned place
type FeedbackRequest struct {
	SearchID string `json:"searchId" binding:"required"`
	PlaceID  string `json:"placeId" binding:"required"`
	Action   string `json:"action" binding:"required"` // click, directions, view_details
}

// FeedbackResponse represents feedback response
type FeedbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
