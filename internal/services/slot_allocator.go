package services

import (
	"itinerary-planner-service/internal/domain"
	"strings"
)

const (
	lunchCutoff = 11.5
	lunchStart  = 12.0
	lunchEnd    = 14.0
	dinnerStart = 18.0
	// Restaurants are nudged to dinner while the cursor is in [lunchEnd, dinnerCutoff).
	dinnerCutoff = 17.5
	dinnerEnd    = 20.0

	noteSeparator     = " • "
	unschedulableNote = "Unable to schedule - check opening hours"
)

// slot is an accepted candidate for one activity.
type slot struct {
	day   int
	start float64
	hours OpeningHours
}

// AllocateSlots assigns every activity a trip day and start time.
//
// Activities are visited in list order. A manual pin is taken as-is. Otherwise
// the activity is aimed at an even-spread target day, then every other day in
// ascending order, and lands at the first time that fits its opening hours,
// the day bounds and the day's running cursor. Restaurants are nudged toward
// lunch or dinner. An activity that fits nowhere gets an Unscheduled placement
// on day 1 and does not block the rest.
//
// The result has exactly one placement per input activity, in input order.
// hours may be nil, in which case ParseOpeningHours is used.
func AllocateSlots(
	activities []domain.Activity,
	constraints Constraints,
	tripRange domain.DateRange,
	hours HoursFunc,
) []domain.Placement {
	if hours == nil {
		hours = ParseOpeningHours
	}

	totalDays := tripRange.TotalDays()
	placements := make([]domain.Placement, 0, len(activities))
	if len(activities) == 0 {
		return placements
	}

	// Next free hour per day, indexed by day number. Lives for this pass only.
	cursors := make([]float64, totalDays+1)
	for d := 1; d <= totalDays; d++ {
		cursors[d] = max(domain.DefaultDayStart, constraints.For(d).StartOr(domain.DefaultDayStart))
	}

	perDay := (len(activities) + totalDays - 1) / totalDays

	for i, act := range activities {
		if act.ManualPin != nil {
			placements = append(placements, domain.Placement{
				ActivityID: act.ID,
				Day:        act.ManualPin.Day,
				Time:       act.ManualPin.Time,
				DayOfWeek:  tripRange.DateOf(act.ManualPin.Day).Weekday(),
				IsManual:   true,
			})
			continue
		}

		target := i/perDay + 1
		duration := act.Category.Duration()

		best, ok := findSlot(act, target, duration, cursors, constraints, tripRange, hours)
		if !ok {
			placements = append(placements, domain.Placement{
				ActivityID: act.ID,
				Day:        1,
				Time:       domain.Unscheduled,
				DayOfWeek:  tripRange.DateOf(1).Weekday(),
				Note:       unschedulableNote,
			})
			continue
		}

		placements = append(placements, domain.Placement{
			ActivityID: act.ID,
			Day:        best.day,
			Time:       domain.FormatClock(best.start),
			DayOfWeek:  tripRange.DateOf(best.day).Weekday(),
			Note:       slotNote(act.Category, best),
		})
		cursors[best.day] = best.start + duration
	}

	return placements
}

// findSlot tries target first, then the remaining days in ascending order.
func findSlot(
	act domain.Activity,
	target int,
	duration float64,
	cursors []float64,
	constraints Constraints,
	tripRange domain.DateRange,
	hours HoursFunc,
) (slot, bool) {
	totalDays := tripRange.TotalDays()

	days := make([]int, 0, totalDays+1)
	days = append(days, target)
	for d := 1; d <= totalDays; d++ {
		if d != target {
			days = append(days, d)
		}
	}

	for _, day := range days {
		if day < 1 || day > totalDays {
			continue
		}

		h := hours(act.OpeningHours, tripRange.DateOf(day).Weekday())
		latestEnd := constraints.For(day).EndOr(domain.DefaultDayEnd)
		cursor := cursors[day]

		if h.IsClosed || cursor >= latestEnd {
			continue
		}

		start := max(h.Opens, cursor)
		if act.Category == domain.CategoryRestaurant {
			start = mealNudge(start, cursor, h.Opens)
		}

		end := start + duration
		if end <= h.Closes && end <= latestEnd {
			return slot{day: day, start: start, hours: h}, true
		}
	}

	return slot{}, false
}

// mealNudge moves a restaurant visit to lunch when the day is still young,
// or to dinner when the afternoon is already under way.
func mealNudge(start, cursor, opens float64) float64 {
	switch {
	case cursor < lunchCutoff && start < lunchStart:
		return max(lunchStart, opens, cursor)
	case cursor >= lunchEnd && cursor < dinnerCutoff && start < dinnerStart:
		return max(dinnerStart, opens, cursor)
	}
	return start
}

func slotNote(category domain.Category, s slot) string {
	var notes []string

	if s.start == s.hours.Opens && s.hours.Opens > domain.DefaultDayStart {
		notes = append(notes, "Opens at "+domain.Format12h(s.hours.Opens))
	}

	if category == domain.CategoryRestaurant {
		switch {
		case s.start >= lunchCutoff && s.start < lunchEnd:
			notes = append(notes, "Lunch time")
		case s.start >= dinnerCutoff && s.start < dinnerEnd:
			notes = append(notes, "Dinner time")
		}
	}

	return strings.Join(notes, noteSeparator)
}
