package domain

import (
	"fmt"
	"strings"
)

// Trip is the aggregate a scheduling pass reads as an immutable snapshot.
type Trip struct {
	ID             string          `json:"id"`
	Destination    string          `json:"destination"`
	StartDate      string          `json:"start_date"`
	EndDate        string          `json:"end_date"`
	Activities     []Activity      `json:"activities"`
	Flights        []Flight        `json:"flights"`
	Accommodations []Accommodation `json:"accommodations"`
}

func (t Trip) DateRange() (DateRange, error) {
	r, err := NewDateRange(t.StartDate, t.EndDate)
	if err != nil {
		return DateRange{}, fmt.Errorf("trip %s: %w", t.ID, err)
	}
	return r, nil
}

// Validate checks what scheduling relies on: a trip id, a readable date range
// and activity ids that are non-empty and unique.
func (t Trip) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("trip id must be non-empty: %w", ErrInvalidTrip)
	}

	if _, err := t.DateRange(); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(t.Activities))
	for i, a := range t.Activities {
		if strings.TrimSpace(a.ID) == "" {
			return fmt.Errorf("trip %s: activity at index %d has empty id: %w", t.ID, i+1, ErrInvalidTrip)
		}
		if _, ok := seen[a.ID]; ok {
			return fmt.Errorf("trip %s: duplicate activity id %q: %w", t.ID, a.ID, ErrInvalidTrip)
		}
		seen[a.ID] = struct{}{}
	}

	return nil
}

// Clone deep-copies the trip so callers can hand out snapshots.
func (t Trip) Clone() Trip {
	out := t

	out.Activities = make([]Activity, len(t.Activities))
	for i, a := range t.Activities {
		out.Activities[i] = a.Clone()
	}

	out.Flights = make([]Flight, len(t.Flights))
	for i, f := range t.Flights {
		out.Flights[i] = f.Clone()
	}

	out.Accommodations = append([]Accommodation(nil), t.Accommodations...)
	return out
}

func (t Trip) ActivityIndex(id string) int {
	for i, a := range t.Activities {
		if a.ID == id {
			return i
		}
	}
	return -1
}
