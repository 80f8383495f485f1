package api

import (
	"bytes"
	"context"
	"encoding/json"
	"itinerary-planner-service/internal/adapters/repositories"
	"itinerary-planner-service/internal/adapters/routing"
	"itinerary-planner-service/internal/api/dto"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/services"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

var (
	shrine = domain.Coordinates{Lat: 35.676, Lng: 139.699}
	museum = domain.Coordinates{Lat: 35.719, Lng: 139.776}
)

// 2026-01-10 is a Saturday.
func testTrip() domain.Trip {
	return domain.Trip{
		ID:          "tokyo",
		Destination: "Tokyo",
		StartDate:   "2026-01-10",
		EndDate:     "2026-01-11",
		Activities: []domain.Activity{
			{ID: "a1", Name: "Meiji Shrine", Location: shrine, Category: domain.CategoryAttraction},
			{
				ID:           "a2",
				Name:         "National Museum",
				Location:     museum,
				Category:     domain.CategoryAttraction,
				OpeningHours: []string{"Saturday: 9:30 AM – 5:00 PM", "Sunday: Closed"},
			},
		},
	}
}

func newTestServer(t *testing.T, c services.Collaborators) (*httptest.Server, *repositories.MemoryTripRepository) {
	t.Helper()

	repo := repositories.NewMemoryTripRepository()
	if err := repo.Put(testTrip()); err != nil {
		t.Fatalf("Put: %v", err)
	}

	srv := httptest.NewServer(NewRouter(RouterConfig{
		Repo:              repo,
		Collaborators:     c,
		DefaultMode:       domain.TravelDriving,
		TravelConcurrency: 2,
		Location:          time.UTC,
	}))
	t.Cleanup(srv.Close)
	return srv, repo
}

func do(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func decode(t *testing.T, res *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestHealthAndRequestID(t *testing.T) {
	srv, _ := newTestServer(t, services.Collaborators{})

	res := do(t, http.MethodGet, srv.URL+"/health", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}
	if res.Header.Get("X-Request-ID") == "" {
		t.Fatalf("missing X-Request-ID header")
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	res2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer res2.Body.Close()
	if got := res2.Header.Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("X-Request-ID = %q, want abc-123", got)
	}

	if res := do(t, http.MethodPost, srv.URL+"/health", nil); res.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("POST /health status = %d, want 405", res.StatusCode)
	}
}

func TestListTrips(t *testing.T) {
	srv, _ := newTestServer(t, services.Collaborators{})

	res := do(t, http.MethodGet, srv.URL+"/trips", nil)
	var body dto.ListTripsResponse
	decode(t, res, &body)

	if len(body.Trips) != 1 || body.Trips[0].ID != "tokyo" || body.Trips[0].Activities != 2 {
		t.Fatalf("trips = %+v, want one tokyo trip with 2 activities", body.Trips)
	}
}

func TestGetItinerary(t *testing.T) {
	srv, _ := newTestServer(t, services.Collaborators{})

	res := do(t, http.MethodGet, srv.URL+"/trips/tokyo/itinerary", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}

	var body dto.ItineraryResponse
	decode(t, res, &body)

	if body.TotalDays != 2 || len(body.Days) != 2 || len(body.Bounds) != 2 {
		t.Fatalf("days = %d/%d/%d, want 2", body.TotalDays, len(body.Days), len(body.Bounds))
	}
	if len(body.Placements) != 2 {
		t.Fatalf("len(placements) = %d, want 2", len(body.Placements))
	}
	if body.Travel.Status != string(services.TravelSkipped) {
		t.Fatalf("travel status = %q, want skipped", body.Travel.Status)
	}
}

func TestGetItineraryErrors(t *testing.T) {
	srv, _ := newTestServer(t, services.Collaborators{})

	tests := []struct {
		name string
		path string
		want int
	}{
		{"unknown trip", "/trips/nowhere/itinerary", http.StatusNotFound},
		{"bad mode", "/trips/tokyo/itinerary?travel=true&mode=walking", http.StatusBadRequest},
		{"bad flag", "/trips/tokyo/itinerary?travel=maybe", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := do(t, http.MethodGet, srv.URL+tt.path, nil)
			if res.StatusCode != tt.want {
				t.Fatalf("status = %d, want %d", res.StatusCode, tt.want)
			}
		})
	}
}

func TestSetPin(t *testing.T) {
	srv, repo := newTestServer(t, services.Collaborators{})

	tests := []struct {
		name     string
		activity string
		body     dto.PinRequest
		want     int
	}{
		{"closed day", "a2", dto.PinRequest{Day: 2, Time: "10:00"}, http.StatusConflict},
		{"before opening", "a2", dto.PinRequest{Day: 1, Time: "08:00"}, http.StatusConflict},
		{"day outside trip", "a2", dto.PinRequest{Day: 5, Time: "10:00"}, http.StatusBadRequest},
		{"missing day", "a2", dto.PinRequest{Time: "10:00"}, http.StatusUnprocessableEntity},
		{"unknown activity", "zz", dto.PinRequest{Day: 1, Time: "10:00"}, http.StatusNotFound},
		{"forced", "a2", dto.PinRequest{Day: 1, Time: "08:00", Force: true}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := do(t, http.MethodPut, srv.URL+"/trips/tokyo/activities/"+tt.activity+"/pin", tt.body)
			if res.StatusCode != tt.want {
				t.Fatalf("status = %d, want %d", res.StatusCode, tt.want)
			}
		})
	}

	trip, err := repo.GetTrip(context.Background(), "tokyo")
	if err != nil {
		t.Fatalf("GetTrip: %v", err)
	}
	pin := trip.Activities[1].ManualPin
	if pin == nil || pin.Day != 1 || pin.Time != "08:00" {
		t.Fatalf("pin = %+v, want day 1 08:00", pin)
	}

	res := do(t, http.MethodGet, srv.URL+"/trips/tokyo/itinerary", nil)
	var body dto.ItineraryResponse
	decode(t, res, &body)

	var found bool
	for _, p := range body.Placements {
		if p.ActivityID == "a2" {
			found = p.IsManual && p.Day == 1 && p.Time == "08:00"
		}
	}
	if !found {
		t.Fatalf("placements = %+v, want a2 pinned at day 1 08:00", body.Placements)
	}
}

func TestClearPin(t *testing.T) {
	srv, repo := newTestServer(t, services.Collaborators{})

	if err := repo.SetPin(context.Background(), "tokyo", "a1", domain.ManualPin{Day: 2, Time: "11:00"}); err != nil {
		t.Fatalf("SetPin: %v", err)
	}

	res := do(t, http.MethodDelete, srv.URL+"/trips/tokyo/activities/a1/pin", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}

	trip, _ := repo.GetTrip(context.Background(), "tokyo")
	if trip.Activities[0].ManualPin != nil {
		t.Fatalf("pin = %+v, want nil", trip.Activities[0].ManualPin)
	}
}

func TestReorder(t *testing.T) {
	srv, repo := newTestServer(t, services.Collaborators{})

	bad := do(t, http.MethodPut, srv.URL+"/trips/tokyo/activities/order", dto.ReorderRequest{ActivityIDs: []string{"a2"}})
	if bad.StatusCode != http.StatusBadRequest {
		t.Fatalf("partial order status = %d, want 400", bad.StatusCode)
	}

	res := do(t, http.MethodPut, srv.URL+"/trips/tokyo/activities/order", dto.ReorderRequest{ActivityIDs: []string{"a2", "a1"}})
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", res.StatusCode)
	}

	trip, _ := repo.GetTrip(context.Background(), "tokyo")
	if trip.Activities[0].ID != "a2" || trip.Activities[1].ID != "a1" {
		t.Fatalf("order = %s,%s, want a2,a1", trip.Activities[0].ID, trip.Activities[1].ID)
	}
}

func TestPlanSnapshotWithTravel(t *testing.T) {
	provider := routing.NewMockProvider([]routing.MockLeg{{From: shrine, To: museum, Minutes: 25, Meters: 9400}})
	srv, _ := newTestServer(t, services.Collaborators{Routing: provider})

	trip := testTrip()
	req := dto.PlanItineraryRequest{
		Trip: dto.TripRequest{
			ID:         "snapshot",
			StartDate:  "2026-01-10",
			EndDate:    "2026-01-10",
			Activities: trip.Activities,
		},
		Travel: true,
	}

	res := do(t, http.MethodPost, srv.URL+"/itineraries", req)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}

	var body dto.ItineraryResponse
	decode(t, res, &body)

	if body.Travel.Status != string(services.TravelComplete) || body.Travel.Estimated != 1 {
		t.Fatalf("travel = %+v, want complete with 1 estimate", body.Travel)
	}
	if body.Travel.Mode != string(domain.TravelDriving) {
		t.Fatalf("travel mode = %q, want driving", body.Travel.Mode)
	}

	leg := body.Days[0].Entries[0].TravelToNext
	if leg == nil || leg.DurationMinutes != 25 {
		t.Fatalf("first leg = %+v, want 25 minutes", leg)
	}
}

func TestPlanSnapshotValidation(t *testing.T) {
	srv, _ := newTestServer(t, services.Collaborators{})

	tests := []struct {
		name string
		body any
		want int
	}{
		{"missing dates", dto.PlanItineraryRequest{Trip: dto.TripRequest{ID: "x"}}, http.StatusUnprocessableEntity},
		{"bad mode", dto.PlanItineraryRequest{
			Trip: dto.TripRequest{ID: "x", StartDate: "2026-01-10", EndDate: "2026-01-10"},
			Mode: "walking",
		}, http.StatusUnprocessableEntity},
		{"end before start", dto.PlanItineraryRequest{
			Trip: dto.TripRequest{ID: "x", StartDate: "2026-01-10", EndDate: "2026-01-09"},
		}, http.StatusBadRequest},
		{"unknown field", map[string]any{"trip": map[string]any{"id": "x"}, "extra": 1}, http.StatusBadRequest},
		{"trip too long", dto.PlanItineraryRequest{
			Trip: dto.TripRequest{ID: "x", StartDate: "1700-01-01", EndDate: "2026-01-01"},
		}, http.StatusBadRequest},
		{"duplicate activity ids", dto.PlanItineraryRequest{
			Trip: dto.TripRequest{
				ID:         "x",
				StartDate:  "2026-01-10",
				EndDate:    "2026-01-10",
				Activities: []domain.Activity{{ID: "a1", Name: "Shrine"}, {ID: "a1", Name: "Museum"}},
			},
		}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := do(t, http.MethodPost, srv.URL+"/itineraries", tt.body)
			if res.StatusCode != tt.want {
				t.Fatalf("status = %d, want %d", res.StatusCode, tt.want)
			}
		})
	}
}

func TestExports(t *testing.T) {
	srv, _ := newTestServer(t, services.Collaborators{})

	tests := []struct {
		path        string
		contentType string
		prefix      string
	}{
		{"/trips/tokyo/itinerary.ics", "text/calendar", "BEGIN:VCALENDAR"},
		{"/trips/tokyo/itinerary.pdf", "application/pdf", "%PDF-"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			res := do(t, http.MethodGet, srv.URL+tt.path, nil)
			if res.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want 200", res.StatusCode)
			}
			if ct := res.Header.Get("Content-Type"); !strings.HasPrefix(ct, tt.contentType) {
				t.Fatalf("Content-Type = %q, want %s", ct, tt.contentType)
			}

			var buf bytes.Buffer
			if _, err := buf.ReadFrom(res.Body); err != nil {
				t.Fatalf("read body: %v", err)
			}
			if !strings.HasPrefix(buf.String(), tt.prefix) {
				t.Fatalf("body starts %q, want %q", buf.String()[:min(len(buf.String()), 20)], tt.prefix)
			}
		})
	}
}
