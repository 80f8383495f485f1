package domain

import "time"

// Unscheduled is the placement time of an activity that fits nowhere in the trip.
const Unscheduled = "—"

// DefaultDayStart and DefaultDayEnd frame a day with no flight or lodging constraints.
const (
	DefaultDayStart = 9.0
	DefaultDayEnd   = 20.0
)

// DayBounds limits automatic placement on one trip day. Nil fields are unconstrained.
type DayBounds struct {
	EarliestStart *float64 `json:"earliest_start,omitempty"`
	LatestEnd     *float64 `json:"latest_end,omitempty"`
}

// StartOr returns the earliest start, or def when unset.
func (b DayBounds) StartOr(def float64) float64 {
	if b.EarliestStart == nil {
		return def
	}
	return *b.EarliestStart
}

// EndOr returns the latest end, or def when unset.
func (b DayBounds) EndOr(def float64) float64 {
	if b.LatestEnd == nil {
		return def
	}
	return *b.LatestEnd
}

// Represents where the allocator put one activity.
type Placement struct {
	ActivityID string       `json:"activity_id"`
	Day        int          `json:"day"`
	Time       string       `json:"time"`
	DayOfWeek  time.Weekday `json:"day_of_week"`
	IsManual   bool         `json:"is_manual"`
	Note       string       `json:"note,omitempty"`
}

func (p Placement) Scheduled() bool { return p.Time != Unscheduled }

// SortKey orders placements within a day; unschedulable or unreadable times sort last.
func (p Placement) SortKey() float64 {
	if !p.Scheduled() {
		return UnscheduledSortKey
	}
	h, err := ParseClock(p.Time)
	if err != nil {
		return UnscheduledSortKey
	}
	return h
}

// UnscheduledSortKey sorts after every real time of day.
const UnscheduledSortKey = 999.0
