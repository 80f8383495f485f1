package domain

import (
	"errors"
	"testing"
)

func TestTripValidate(t *testing.T) {
	base := func() Trip {
		return Trip{
			ID:        "t1",
			StartDate: "2026-01-10",
			EndDate:   "2026-01-12",
			Activities: []Activity{
				{ID: "a1", Name: "Shrine"},
				{ID: "a2", Name: "Tower"},
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Trip)
		wantErr error
	}{
		{"valid", func(*Trip) {}, nil},
		{"missing id", func(t *Trip) { t.ID = " " }, ErrInvalidTrip},
		{"reversed dates", func(t *Trip) { t.EndDate = "2026-01-01" }, ErrInvalidRange},
		{"empty activity id", func(t *Trip) { t.Activities[1].ID = "" }, ErrInvalidTrip},
		{"duplicate activity id", func(t *Trip) { t.Activities[1].ID = "a1" }, ErrInvalidTrip},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trip := base()
			tt.mutate(&trip)
			if err := trip.Validate(); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
