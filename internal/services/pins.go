package services

import (
	"fmt"
	"itinerary-planner-service/internal/domain"
)

// CheckPin validates a pin the user is about to set. Pins are not re-checked
// when scheduling; this is the only point where opening hours apply to them.
//
// A pin on a day the place is closed fails with ErrClosedOnDay. A time before
// opening or less than an hour before closing fails with ErrOutsideOpeningHours,
// which callers may choose to override.
func CheckPin(act domain.Activity, tripRange domain.DateRange, pin domain.ManualPin) error {
	if !tripRange.Contains(pin.Day) {
		return fmt.Errorf("check pin: day %d outside 1..%d: %w", pin.Day, tripRange.TotalDays(), domain.ErrInvalidPin)
	}

	at, err := domain.ParseClock(pin.Time)
	if err != nil {
		return fmt.Errorf("check pin: %w: %w", domain.ErrInvalidPin, err)
	}

	weekday := tripRange.DateOf(pin.Day).Weekday()
	hours := ParseOpeningHours(act.OpeningHours, weekday)

	if hours.IsClosed {
		return fmt.Errorf("check pin: %s is closed on %ss: %w", act.Name, weekday, domain.ErrClosedOnDay)
	}

	if at < hours.Opens || at > hours.Closes-1 {
		return fmt.Errorf(
			"check pin: %s is open %s - %s, %s selected: %w",
			act.Name, domain.Format12h(hours.Opens), domain.Format12h(hours.Closes), pin.Time,
			domain.ErrOutsideOpeningHours,
		)
	}

	return nil
}
