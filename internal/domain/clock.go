package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Times of day are decimal hours: 14.5 is 2:30 PM.

// ParseClock parses a 24-hour "HH:MM" string into decimal hours.
func ParseClock(s string) (float64, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("parse clock %q: %w", s, ErrInvalidClock)
	}

	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("parse clock %q: %w", s, ErrInvalidClock)
	}

	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 || len(mm) != 2 {
		return 0, fmt.Errorf("parse clock %q: %w", s, ErrInvalidClock)
	}

	return float64(h) + float64(m)/60, nil
}

func splitHour(h float64) (int, int) {
	total := int(math.Round(h * 60))
	return total / 60, total % 60
}

// FormatClock renders decimal hours as zero-padded "HH:MM", minutes rounded.
func FormatClock(h float64) string {
	hour, minute := splitHour(h)
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// Format12h renders decimal hours as "h:MM AM/PM".
func Format12h(h float64) string {
	hour, minute := splitHour(h)

	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}

	display := hour
	switch {
	case hour > 12:
		display = hour - 12
	case hour == 0:
		display = 12
	}

	return fmt.Sprintf("%d:%02d %s", display, minute, ampm)
}

// FormatMinutes renders a duration in minutes as "1h 5m" or "25m".
func FormatMinutes(minutes int) string {
	if h := minutes / 60; h > 0 {
		return fmt.Sprintf("%dh %dm", h, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}
