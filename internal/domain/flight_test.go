package domain

import (
	"testing"
	"time"
)

func TestFlightDurationAndLayovers(t *testing.T) {
	f := Flight{
		ID:        "f1",
		Direction: Outbound,
		Segments: []FlightSegment{
			{DepartureAirport: "SFO", DepartureDate: "2026-01-09", DepartureTime: "22:10", ArrivalAirport: "HNL", ArrivalDate: "2026-01-10", ArrivalTime: "02:00"},
			{DepartureAirport: "HNL", DepartureDate: "2026-01-10", DepartureTime: "04:30", ArrivalAirport: "NRT", ArrivalDate: "2026-01-10", ArrivalTime: "13:00", IsLayover: true},
		},
	}

	total, err := f.TotalDuration()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := 14*time.Hour + 50*time.Minute; total != want {
		t.Fatalf("TotalDuration = %v, want %v", total, want)
	}

	layovers, err := f.Layovers()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(layovers) != 1 || layovers[0].Airport != "HNL" || layovers[0].Wait != 150*time.Minute {
		t.Fatalf("layovers = %+v", layovers)
	}

	if ap, _ := f.Endpoint(); ap != "NRT" {
		t.Fatalf("outbound endpoint = %q, want NRT", ap)
	}

	f.Direction = Return
	if ap, _ := f.Endpoint(); ap != "SFO" {
		t.Fatalf("return endpoint = %q, want SFO", ap)
	}
}
