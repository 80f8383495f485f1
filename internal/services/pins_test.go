package services

import (
	"errors"
	"itinerary-planner-service/internal/domain"
	"testing"
)

func TestCheckPin(t *testing.T) {
	// 2026-01-10 is a Saturday.
	r := mustRange(t, "2026-01-10", "2026-01-12")
	act := domain.Activity{
		ID:   "museum",
		Name: "Mori Art Museum",
		OpeningHours: []string{
			"Saturday: 10:00 AM – 10:00 PM",
			"Sunday: 10:00 AM – 10:00 PM",
			"Monday: Closed",
		},
	}

	tests := []struct {
		name string
		pin  domain.ManualPin
		want error
	}{
		{"inside hours", domain.ManualPin{Day: 1, Time: "10:00"}, nil},
		{"last full hour", domain.ManualPin{Day: 2, Time: "21:00"}, nil},
		{"before opening", domain.ManualPin{Day: 1, Time: "09:30"}, domain.ErrOutsideOpeningHours},
		{"too close to closing", domain.ManualPin{Day: 2, Time: "21:30"}, domain.ErrOutsideOpeningHours},
		{"closed weekday", domain.ManualPin{Day: 3, Time: "12:00"}, domain.ErrClosedOnDay},
		{"day before trip", domain.ManualPin{Day: 0, Time: "12:00"}, domain.ErrInvalidPin},
		{"day after trip", domain.ManualPin{Day: 4, Time: "12:00"}, domain.ErrInvalidPin},
		{"bad time", domain.ManualPin{Day: 1, Time: "noon"}, domain.ErrInvalidPin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPin(act, r, tt.pin)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("CheckPin(%+v) = %v, want nil", tt.pin, err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("CheckPin(%+v) = %v, want %v", tt.pin, err, tt.want)
			}
		})
	}
}
