package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"moodspots/internal/config"
	"moodspots/internal/model"
	"moodspots/internal/service"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubProvider returns canned places or an error
type stubProvider struct {
	places []service.RawPlace
	err    error
	panics bool
}

func (s *stubProvider) Name() string { return "geoapify" }

func (s *stubProvider) Vocabulary() model.CategoryTable { return service.GeoapifyCategories }

func (s *stubProvider) SearchNearby(ctx context.Context, q service.SearchQuery) ([]service.RawPlace, error) {
	if s.panics {
		panic("provider exploded")
	}
	return s.places, s.err
}

// stubSearchLog records feedback calls
type stubSearchLog struct {
	feedback []string
	err      error
}

func (s *stubSearchLog) LogSearch(ctx context.Context, entry *model.SearchLog) error { return nil }

func (s *stubSearchLog) LogFeedback(ctx context.Context, searchID, placeID, action string) error {
	s.feedback = append(s.feedback, searchID+"|"+placeID+"|"+action)
	return s.err
}

func newTestRouter(provider service.PlacesProvider, searchLog service.SearchLogger) *gin.Engine {
	placesCfg := &config.PlacesConfig{
		Provider:     config.ProviderGeoapify,
		RadiusMeters: 5000,
		ResultLimit:  20,
		Timeout:      10,
	}
	serverCfg := &config.ServerConfig{
		AllowedOrigins: "*",
		AllowedHeaders: "authorization,x-client-info,apikey,content-type",
	}

	svc := service.NewPlacesService(provider, searchLog, placesCfg)
	return NewRouter(
		serverCfg,
		NewPlacesHandler(svc),
		NewFeedbackHandler(svc),
		BuildInfo{Version: "test", BuildTime: "now", GitCommit: "abc123"},
	)
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON response %q: %v", w.Body.String(), err)
	}
	return out
}

const coffeeRequest = `{"mood":"coffee","location":{"lat":12.93,"lng":80.11}}`

func TestPlacesSearch_Success(t *testing.T) {
	router := newTestRouter(&stubProvider{places: []service.RawPlace{
		{ID: "cafe-1", Name: "Filter Coffee House", Location: model.Location{Lat: 12.935, Lng: 80.115}},
	}}, nil)

	w := doJSON(router, http.MethodPost, "/api/v1/places", coffeeRequest)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp model.PlacesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Places) != 1 {
		t.Fatalf("expected 1 place, got %d", len(resp.Places))
	}
	if resp.Places[0].DistanceText != "0.5 mi" {
		t.Errorf("DistanceText = %q, want %q", resp.Places[0].DistanceText, "0.5 mi")
	}
	if resp.SearchID == "" {
		t.Error("searchId missing")
	}
	if strings.Contains(w.Body.String(), "useMock") {
		t.Error("success must not carry the fallback flag")
	}
}

func TestPlacesSearch_FiltersAndSeq(t *testing.T) {
	open, closed := true, false
	router := newTestRouter(&stubProvider{places: []service.RawPlace{
		{ID: "closed", Name: "Closed", OpenNow: &closed, Location: model.Location{Lat: 12.931, Lng: 80.11}},
		{ID: "far", Name: "Far", OpenNow: &open, Location: model.Location{Lat: 12.96, Lng: 80.11}},
		{ID: "near", Name: "Near", OpenNow: &open, Location: model.Location{Lat: 12.94, Lng: 80.11}},
	}}, nil)

	body := `{"mood":"work","location":{"lat":12.93,"lng":80.11},"filters":{"openNow":true,"sortBy":"distance"},"seq":7}`
	w := doJSON(router, http.MethodPost, "/api/v1/places", body)

	var resp model.PlacesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Seq == nil || *resp.Seq != 7 {
		t.Errorf("seq = %v, want 7", resp.Seq)
	}
	if len(resp.Places) != 2 || resp.Places[0].ID != "near" || resp.Places[1].ID != "far" {
		t.Errorf("unexpected ranking: %+v", resp.Places)
	}
}

func TestPlacesSearch_Fallbacks(t *testing.T) {
	tests := []struct {
		name      string
		provider  service.PlacesProvider
		wantField string
		wantText  string
	}{
		{
			name:      "missing key",
			provider:  service.NewGeoapifyProvider("http://127.0.0.1:0", "", nil),
			wantField: "message",
			wantText:  "Geoapify API key not configured",
		},
		{
			name:      "upstream error",
			provider:  &stubProvider{err: errors.New("geoapify API error: Invalid apiKey")},
			wantField: "error",
			wantText:  "geoapify API error: Invalid apiKey",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(tt.provider, nil)

			w := doJSON(router, http.MethodPost, "/api/v1/places", coffeeRequest)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			body := decode(t, w)
			if body["useMock"] != true {
				t.Errorf("useMock = %v, want true", body["useMock"])
			}
			if body[tt.wantField] != tt.wantText {
				t.Errorf("%s = %v, want %q", tt.wantField, body[tt.wantField], tt.wantText)
			}
			if _, ok := body["places"]; ok {
				t.Error("fallback must not carry places")
			}
		})
	}
}

func TestPlacesSearch_Empty(t *testing.T) {
	router := newTestRouter(&stubProvider{places: []service.RawPlace{}}, nil)

	w := doJSON(router, http.MethodPost, "/api/v1/places", coffeeRequest)

	body := decode(t, w)
	places, ok := body["places"].([]any)
	if !ok || len(places) != 0 {
		t.Errorf("places = %v, want empty array", body["places"])
	}
	if body["message"] != service.NoPlacesMessage {
		t.Errorf("message = %v", body["message"])
	}
	if _, ok := body["useMock"]; ok {
		t.Error("empty result is not a fallback")
	}
}

func TestPlacesSearch_MissingLocation(t *testing.T) {
	router := newTestRouter(&stubProvider{}, nil)

	for _, body := range []string{`{"mood":"coffee"}`, `{"mood":"coffee","location":null}`} {
		w := doJSON(router, http.MethodPost, "/api/v1/places", body)

		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", body, w.Code)
		}
		if got := decode(t, w)["error"]; got != service.LocationRequiredMessage {
			t.Errorf("%s: error = %v", body, got)
		}
	}
}

func TestPlacesSearch_MalformedBody(t *testing.T) {
	router := newTestRouter(&stubProvider{}, nil)

	w := doJSON(router, http.MethodPost, "/api/v1/places", `{"mood":`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decode(t, w)
	if body["useMock"] != true {
		t.Errorf("useMock = %v", body["useMock"])
	}
	if errText, _ := body["error"].(string); !strings.HasPrefix(errText, "Invalid request") {
		t.Errorf("error = %q", errText)
	}
}

func TestPlacesSearch_PanicRecoversToFallback(t *testing.T) {
	router := newTestRouter(&stubProvider{panics: true}, nil)

	w := doJSON(router, http.MethodPost, "/api/v1/places", coffeeRequest)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if decode(t, w)["useMock"] != true {
		t.Error("panic should produce the fallback shape")
	}
}

func TestPlacesRank(t *testing.T) {
	router := newTestRouter(&stubProvider{}, nil)

	body := `{"places":[
		{"id":"closed","isOpen":false,"rating":5},
		{"id":"three","isOpen":true,"rating":3},
		{"id":"four","isOpen":true,"rating":4}
	],"filters":{"openNow":true,"sortBy":"rating"}}`
	w := doJSON(router, http.MethodPost, "/api/v1/places/rank", body)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp model.RankResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Places) != 2 || resp.Places[0].ID != "four" || resp.Places[1].ID != "three" {
		t.Errorf("unexpected ranking: %+v", resp.Places)
	}
}

func TestMoods(t *testing.T) {
	router := newTestRouter(&stubProvider{}, nil)

	w := doJSON(router, http.MethodGet, "/api/v1/moods", "")

	var resp struct {
		Moods    []model.MoodConfig `json:"moods"`
		Provider string             `json:"provider"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Moods) != 6 || resp.Moods[0].ID != model.MoodWork {
		t.Errorf("moods = %+v", resp.Moods)
	}
	if resp.Provider != "geoapify" {
		t.Errorf("provider = %q", resp.Provider)
	}
}
