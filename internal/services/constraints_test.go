package services

import (
	"itinerary-planner-service/internal/domain"
	"testing"
)

func mustRange(t *testing.T, start, end string) domain.DateRange {
	t.Helper()
	r, err := domain.NewDateRange(start, end)
	if err != nil {
		t.Fatalf("NewDateRange(%s, %s): %v", start, end, err)
	}
	return r
}

func outboundFlight(id, date, departs, arrives string) domain.Flight {
	return domain.Flight{
		ID:        id,
		Direction: domain.Outbound,
		Segments: []domain.FlightSegment{{
			FlightNumber:     "UA837",
			DepartureAirport: "SFO",
			DepartureDate:    date,
			DepartureTime:    departs,
			ArrivalAirport:   "NRT",
			ArrivalDate:      date,
			ArrivalTime:      arrives,
		}},
	}
}

func returnFlight(id, date, departs, arrives string) domain.Flight {
	return domain.Flight{
		ID:        id,
		Direction: domain.Return,
		Segments: []domain.FlightSegment{{
			FlightNumber:     "UA838",
			DepartureAirport: "NRT",
			DepartureDate:    date,
			DepartureTime:    departs,
			ArrivalAirport:   "SFO",
			ArrivalDate:      date,
			ArrivalTime:      arrives,
		}},
	}
}

func TestCollectConstraintsFlights(t *testing.T) {
	r := mustRange(t, "2026-01-10", "2026-01-12")
	flights := []domain.Flight{
		outboundFlight("out", "2026-01-10", "06:00", "13:00"),
		returnFlight("ret", "2026-01-12", "18:00", "23:00"),
	}

	c := CollectConstraints(flights, nil, r)

	if len(c.Bounds) != 3 {
		t.Fatalf("len(Bounds) = %d, want 3", len(c.Bounds))
	}
	if got := c.For(1).StartOr(0); got != 14 {
		t.Fatalf("day 1 earliest start = %v, want 14", got)
	}
	if c.For(1).LatestEnd != nil {
		t.Fatalf("day 1 latest end = %v, want unset", *c.For(1).LatestEnd)
	}
	if c.For(2).EarliestStart != nil || c.For(2).LatestEnd != nil {
		t.Fatalf("day 2 should be unconstrained, got %+v", c.For(2))
	}
	if got := c.For(3).EndOr(24); got != 15 {
		t.Fatalf("day 3 latest end = %v, want 15", got)
	}
	if len(c.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", c.Warnings)
	}
}

func TestCollectConstraintsCheckIn(t *testing.T) {
	r := mustRange(t, "2026-01-10", "2026-01-12")
	hotel := domain.Accommodation{ID: "h1", Name: "Park Hotel", CheckIn: "2026-01-10", CheckOut: "2026-01-12", CheckOutTime: "11:00"}

	t.Run("default check-in", func(t *testing.T) {
		c := CollectConstraints(nil, []domain.Accommodation{hotel}, r)
		if got := c.CheckIns[1]; got != 15 {
			t.Fatalf("check-in = %v, want 15", got)
		}
		if got := c.For(1).StartOr(0); got != 16 {
			t.Fatalf("earliest start = %v, want 16", got)
		}
	})

	t.Run("after same-day arrival", func(t *testing.T) {
		flights := []domain.Flight{outboundFlight("out", "2026-01-10", "06:00", "13:00")}
		c := CollectConstraints(flights, []domain.Accommodation{hotel}, r)
		if got := c.CheckIns[1]; got != 14.5 {
			t.Fatalf("check-in = %v, want 14.5", got)
		}
		if got := c.For(1).StartOr(0); got != 15.5 {
			t.Fatalf("earliest start = %v, want 15.5", got)
		}
	})
}

func TestCollectConstraintsSkipsBadRecords(t *testing.T) {
	r := mustRange(t, "2026-01-10", "2026-01-12")
	flights := []domain.Flight{
		outboundFlight("bad", "2026-01-10", "06:00", "1pm"),
		outboundFlight("outside", "2026-02-01", "06:00", "13:00"),
	}
	accs := []domain.Accommodation{{ID: "h1", CheckIn: "someday"}}

	c := CollectConstraints(flights, accs, r)

	for d := 1; d <= 3; d++ {
		if b := c.For(d); b.EarliestStart != nil || b.LatestEnd != nil {
			t.Fatalf("day %d should be unconstrained, got %+v", d, b)
		}
	}
	if len(c.Warnings) != 2 {
		t.Fatalf("len(Warnings) = %d, want 2: %v", len(c.Warnings), c.Warnings)
	}
}

func TestCheckInHourUsesLastSegment(t *testing.T) {
	date, _ := domain.ParseDate("2026-01-10")
	f := domain.Flight{
		ID:        "out",
		Direction: domain.Outbound,
		Segments: []domain.FlightSegment{
			{DepartureDate: "2026-01-09", DepartureTime: "22:00", ArrivalDate: "2026-01-10", ArrivalTime: "05:00"},
			{DepartureDate: "2026-01-10", DepartureTime: "07:00", ArrivalDate: "2026-01-10", ArrivalTime: "10:30"},
		},
	}

	if got := CheckInHour(date, []domain.Flight{f}); got != 12 {
		t.Fatalf("CheckInHour = %v, want 12", got)
	}
	if got := CheckInHour(date.AddDays(1), []domain.Flight{f}); got != 15 {
		t.Fatalf("CheckInHour next day = %v, want 15", got)
	}
}
