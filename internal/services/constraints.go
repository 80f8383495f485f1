package services

import (
	"fmt"
	"itinerary-planner-service/internal/domain"
)

const (
	// Time after landing before anything can be scheduled.
	arrivalBuffer = 1.0
	// Time before a return departure that must stay free.
	departureBuffer = 3.0
	// Landing to hotel door: one hour at the airport plus half an hour of travel.
	arrivalToCheckIn = 1.5
	defaultCheckIn   = 15.0
	// Time to settle in after check-in.
	postCheckInBuffer = 1.0
	// Upper bound used while tightening LatestEnd.
	endOfDay = 24.0
)

// Constraints are the per-day bounds a scheduling pass derives from flights and lodging.
type Constraints struct {
	// Bounds[d-1] holds the bounds for trip day d.
	Bounds []domain.DayBounds
	// CheckIns maps a trip day to the computed hotel check-in hour.
	CheckIns map[int]float64
	// Records that were skipped because their dates or times could not be read.
	Warnings []string
}

// For returns the bounds of a 1-based trip day; out-of-range days are unconstrained.
func (c Constraints) For(day int) domain.DayBounds {
	if day < 1 || day > len(c.Bounds) {
		return domain.DayBounds{}
	}
	return c.Bounds[day-1]
}

// CollectConstraints derives day bounds from flights and accommodations.
//
// Outbound arrivals push the day's earliest start to one hour after landing,
// return departures pull the latest end to three hours before take-off, and a
// hotel check-in delays the day until an hour after check-in. A malformed
// record contributes nothing and is reported in Warnings.
func CollectConstraints(
	flights []domain.Flight,
	accommodations []domain.Accommodation,
	tripRange domain.DateRange,
) Constraints {
	out := Constraints{
		Bounds:   make([]domain.DayBounds, tripRange.TotalDays()),
		CheckIns: make(map[int]float64),
	}

	for _, f := range flights {
		for i, seg := range f.Segments {
			switch f.Direction {
			case domain.Outbound:
				date, hour, err := seg.Arrival()
				if err != nil {
					out.warn("flight %s segment %d arrival: %v", f.ID, i+1, err)
					continue
				}
				day := tripRange.DayNumber(date)
				if !tripRange.Contains(day) {
					continue
				}
				b := &out.Bounds[day-1]
				b.EarliestStart = ptr(max(b.StartOr(0), hour+arrivalBuffer))

			case domain.Return:
				date, hour, err := seg.Departure()
				if err != nil {
					out.warn("flight %s segment %d departure: %v", f.ID, i+1, err)
					continue
				}
				day := tripRange.DayNumber(date)
				if !tripRange.Contains(day) {
					continue
				}
				b := &out.Bounds[day-1]
				b.LatestEnd = ptr(min(b.EndOr(endOfDay), hour-departureBuffer))

			default:
				out.warn("flight %s: unknown direction %q", f.ID, f.Direction)
			}
		}
	}

	for _, acc := range accommodations {
		checkIn, err := domain.ParseDate(acc.CheckIn)
		if err != nil {
			out.warn("accommodation %s check-in: %v", acc.ID, err)
			continue
		}

		day := tripRange.DayNumber(checkIn)
		if !tripRange.Contains(day) {
			continue
		}

		at := CheckInHour(checkIn, flights)
		if prev, ok := out.CheckIns[day]; !ok || at > prev {
			out.CheckIns[day] = at
		}

		b := &out.Bounds[day-1]
		b.EarliestStart = ptr(max(b.StartOr(0), at+postCheckInBuffer))
	}

	return out
}

// CheckInHour is when the traveller reaches the hotel on date: 1.5 hours after
// an outbound flight lands that day, otherwise the standard 3 PM.
func CheckInHour(date domain.Date, flights []domain.Flight) float64 {
	for _, f := range flights {
		if f.Direction != domain.Outbound {
			continue
		}
		last, ok := f.Last()
		if !ok {
			continue
		}
		arrDate, arrHour, err := last.Arrival()
		if err != nil || !arrDate.Equal(date) {
			continue
		}
		return arrHour + arrivalToCheckIn
	}
	return defaultCheckIn
}

func (c *Constraints) warn(format string, args ...any) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}

func ptr(v float64) *float64 { return &v }
