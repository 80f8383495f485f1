package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a calendar date with no time zone attached.
//
// Trip days are counted on the local calendar, so every Date is built from its
// explicit year/month/day components and compared at UTC midnight, where no
// DST transition can shift a day boundary.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("parse date %q: %w", s, ErrInvalidDate)
	}

	y, errY := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	d, errD := strconv.Atoi(parts[2])
	if errY != nil || errM != nil || errD != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, ErrInvalidDate)
	}

	if m < 1 || m > 12 || d < 1 || d > 31 {
		return Date{}, fmt.Errorf("parse date %q: %w", s, ErrInvalidDate)
	}

	// Reject dates that normalize into another month (e.g. 2026-02-30).
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d {
		return Date{}, fmt.Errorf("parse date %q: %w", s, ErrInvalidDate)
	}

	return Date{Year: y, Month: time.Month(m), Day: d}, nil
}

func dateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func (d Date) midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// At returns the wall-clock time h (decimal hours) on d in loc. The clock is set
// directly rather than added to midnight, so DST changes earlier in the day do
// not shift it.
func (d Date) At(h float64, loc *time.Location) time.Time {
	hour, minute := splitHour(h)
	return time.Date(d.Year, d.Month, d.Day, hour, minute, 0, 0, loc)
}

func (d Date) AddDays(n int) Date {
	return dateOf(d.midnight().AddDate(0, 0, n))
}

// DaysSince returns the number of calendar days from other to d.
func (d Date) DaysSince(other Date) int {
	// Unix seconds rather than time.Duration, which overflows past ~292 years.
	return int((d.midnight().Unix() - other.midnight().Unix()) / secondsPerDay)
}

func (d Date) Weekday() time.Weekday { return d.midnight().Weekday() }

func (d Date) Equal(other Date) bool { return d == other }

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Long renders the date the way day headers show it, e.g. "Saturday, January 10".
func (d Date) Long() string {
	return d.midnight().Format("Monday, January 2")
}

const secondsPerDay = 24 * 60 * 60

// MaxTripDays caps the inclusive length of a trip.
const MaxTripDays = 366

// DateRange is an inclusive span of trip dates.
type DateRange struct {
	Start Date
	End   Date
}

func NewDateRange(start, end string) (DateRange, error) {
	s, err := ParseDate(start)
	if err != nil {
		return DateRange{}, fmt.Errorf("trip start: %w", err)
	}

	e, err := ParseDate(end)
	if err != nil {
		return DateRange{}, fmt.Errorf("trip end: %w", err)
	}

	if e.DaysSince(s) < 0 {
		return DateRange{}, fmt.Errorf("trip %s..%s: %w", s, e, ErrInvalidRange)
	}
	if days := e.DaysSince(s) + 1; days > MaxTripDays {
		return DateRange{}, fmt.Errorf("trip %s..%s spans %d days, max %d: %w", s, e, days, MaxTripDays, ErrTripTooLong)
	}

	return DateRange{Start: s, End: e}, nil
}

// TotalDays is the inclusive day count of the range.
func (r DateRange) TotalDays() int { return r.End.DaysSince(r.Start) + 1 }

// DayNumber returns the 1-based trip day of d. Values outside 1..TotalDays
// mean d is not part of the trip.
func (r DateRange) DayNumber(d Date) int { return d.DaysSince(r.Start) + 1 }

// DateOf returns the calendar date of a 1-based trip day.
func (r DateRange) DateOf(day int) Date { return r.Start.AddDays(day - 1) }

func (r DateRange) Contains(day int) bool { return day >= 1 && day <= r.TotalDays() }
