package services

import (
	"itinerary-planner-service/internal/domain"
	"slices"
)

// AssembleAgenda merges placements with flight and hotel events into one
// time-ordered list per trip day. Every day of the range is present, even when
// empty. Entries with equal sort keys keep the order flights, check-ins,
// check-outs, activities. Placements on days outside the trip are returned in
// Orphans.
func AssembleAgenda(
	activities []domain.Activity,
	placements []domain.Placement,
	flights []domain.Flight,
	accommodations []domain.Accommodation,
	tripRange domain.DateRange,
) domain.Agenda {
	totalDays := tripRange.TotalDays()

	byID := make(map[string]*domain.Activity, len(activities))
	for i := range activities {
		if _, ok := byID[activities[i].ID]; !ok {
			a := activities[i].Clone()
			byID[a.ID] = &a
		}
	}

	agenda := domain.Agenda{Days: make([]domain.Day, totalDays)}
	for d := 1; d <= totalDays; d++ {
		date := tripRange.DateOf(d)
		agenda.Days[d-1] = domain.Day{
			Number:  d,
			Date:    date.String(),
			Label:   date.Long(),
			Entries: flightEntries(flights, date),
		}
		agenda.Days[d-1].Entries = append(agenda.Days[d-1].Entries, lodgingEntries(accommodations, flights, date)...)
	}

	for i := range placements {
		p := placements[i]
		day := agenda.Day(p.Day)
		if day == nil {
			agenda.Orphans = append(agenda.Orphans, p)
			continue
		}
		day.Entries = append(day.Entries, domain.Entry{
			Kind:      domain.EntryActivity,
			Time:      p.Time,
			SortKey:   p.SortKey(),
			Placement: &p,
			Activity:  byID[p.ActivityID],
		})
	}

	for i := range agenda.Days {
		slices.SortStableFunc(agenda.Days[i].Entries, func(a, b domain.Entry) int {
			switch {
			case a.SortKey < b.SortKey:
				return -1
			case a.SortKey > b.SortKey:
				return 1
			}
			return 0
		})
	}

	return agenda
}

// flightEntries emits one entry per flight with any segment whose relevant
// date is date, timed by the first segment's departure.
func flightEntries(flights []domain.Flight, date domain.Date) []domain.Entry {
	var out []domain.Entry
	for i := range flights {
		f := flights[i]
		first, ok := f.First()
		if !ok {
			continue
		}

		onDay := slices.ContainsFunc(f.Segments, func(s domain.FlightSegment) bool {
			d, err := domain.ParseDate(f.RelevantDate(s))
			return err == nil && d.Equal(date)
		})
		if !onDay {
			continue
		}

		fc := f.Clone()
		out = append(out, domain.Entry{
			Kind:    domain.EntryFlight,
			Time:    first.DepartureTime,
			SortKey: clockSortKey(first.DepartureTime),
			Flight:  &fc,
		})
	}
	return out
}

// lodgingEntries emits check-in and check-out events falling on date.
func lodgingEntries(accommodations []domain.Accommodation, flights []domain.Flight, date domain.Date) []domain.Entry {
	var out []domain.Entry
	for i := range accommodations {
		acc := accommodations[i]

		if in, err := domain.ParseDate(acc.CheckIn); err == nil && in.Equal(date) {
			at := CheckInHour(date, flights)
			out = append(out, domain.Entry{
				Kind:          domain.EntryCheckIn,
				Time:          domain.FormatClock(at),
				SortKey:       at,
				Accommodation: &acc,
			})
		}

		if outDate, err := domain.ParseDate(acc.CheckOut); err == nil && outDate.Equal(date) {
			out = append(out, domain.Entry{
				Kind:          domain.EntryCheckOut,
				Time:          acc.CheckOutTime,
				SortKey:       clockSortKey(acc.CheckOutTime),
				Accommodation: &acc,
			})
		}
	}
	return out
}

func clockSortKey(s string) float64 {
	h, err := domain.ParseClock(s)
	if err != nil {
		return domain.UnscheduledSortKey
	}
	return h
}
