package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// SearchLog is one row of the search_logs analytics table
type SearchLog struct {
	SearchID       string    `db:"search_id"`
	Mood           string    `db:"mood"`
	Lat            float64   `db:"lat"`
	Lng            float64   `db:"lng"`
	Provider       string    `db:"provider"`
	Categories     JSONArray `db:"categories"`
	Outcome        string    `db:"outcome"`
	ResultCount    int       `db:"result_count"`
	PlaceIDs       JSONArray `db:"place_ids"`
	ResponseTimeMs int64     `db:"response_time_ms"`
	CreatedAt      time.Time `db:"created_at"`
}

// JSONArray represents a JSON array field
type JSONArray []string

// Value implements driver.Valuer interface. It returns text so the value
// binds to a JSONB column under lib/pq binary parameters.
func (j JSONArray) Value() (driver.Value, error) {
	if j == nil {
		return "[]", nil
	}
	b, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner interface
func (j *JSONArray) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = nil
		return nil
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return fmt.Errorf("cannot scan %T into JSONArray", value)
	}
}
