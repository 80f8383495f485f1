package repositories

import (
	"context"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"sync"
)

// In-memory implementation of the TripRepository port. Every read hands out a
// deep copy, so callers schedule against a snapshot that later edits cannot touch.
type MemoryTripRepository struct {
	mu    sync.RWMutex
	trips map[string]domain.Trip
	order []string
}

func NewMemoryTripRepository() *MemoryTripRepository {
	return &MemoryTripRepository{trips: make(map[string]domain.Trip)}
}

// Put validates trip and stores a copy of it, replacing any trip with the same id.
func (r *MemoryTripRepository) Put(trip domain.Trip) error {
	if err := trip.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.trips[trip.ID]; !ok {
		r.order = append(r.order, trip.ID)
	}
	r.trips[trip.ID] = trip.Clone()
	return nil
}

func (r *MemoryTripRepository) GetTrip(ctx context.Context, id string) (domain.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.trips[id]
	if !ok {
		return domain.Trip{}, fmt.Errorf("get trip %q: %w", id, domain.ErrTripNotFound)
	}
	return t.Clone(), nil
}

// Return all trips in the order they were first stored.
func (r *MemoryTripRepository) ListTrips(ctx context.Context) ([]domain.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Trip, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.trips[id].Clone())
	}
	return out, nil
}

func (r *MemoryTripRepository) SetPin(ctx context.Context, tripID, activityID string, pin domain.ManualPin) error {
	return r.updateActivity(tripID, activityID, func(a *domain.Activity) {
		a.ManualPin = &pin
	})
}

// ClearPin returns the activity to automatic placement.
func (r *MemoryTripRepository) ClearPin(ctx context.Context, tripID, activityID string) error {
	return r.updateActivity(tripID, activityID, func(a *domain.Activity) {
		a.ManualPin = nil
	})
}

func (r *MemoryTripRepository) Reorder(ctx context.Context, tripID string, activityIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.trips[tripID]
	if !ok {
		return fmt.Errorf("reorder trip %q: %w", tripID, domain.ErrTripNotFound)
	}

	if len(activityIDs) != len(t.Activities) {
		return fmt.Errorf(
			"reorder trip %q: got %d ids for %d activities: %w",
			tripID, len(activityIDs), len(t.Activities), domain.ErrUnknownActivityOrder,
		)
	}

	reordered := make([]domain.Activity, 0, len(activityIDs))
	used := make(map[string]struct{}, len(activityIDs))
	for _, id := range activityIDs {
		if _, dup := used[id]; dup {
			return fmt.Errorf("reorder trip %q: activity %q listed twice: %w", tripID, id, domain.ErrUnknownActivityOrder)
		}
		i := t.ActivityIndex(id)
		if i < 0 {
			return fmt.Errorf("reorder trip %q: unknown activity %q: %w", tripID, id, domain.ErrUnknownActivityOrder)
		}
		used[id] = struct{}{}
		reordered = append(reordered, t.Activities[i])
	}

	t.Activities = reordered
	r.trips[tripID] = t
	return nil
}

// updateActivity applies fn to a copy of the trip so readers holding an
// earlier snapshot never observe the change.
func (r *MemoryTripRepository) updateActivity(tripID, activityID string, fn func(*domain.Activity)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.trips[tripID]
	if !ok {
		return fmt.Errorf("update trip %q: %w", tripID, domain.ErrTripNotFound)
	}

	i := t.ActivityIndex(activityID)
	if i < 0 {
		return fmt.Errorf("update trip %q: activity %q: %w", tripID, activityID, domain.ErrActivityNotFound)
	}

	t = t.Clone()
	fn(&t.Activities[i])
	r.trips[tripID] = t
	return nil
}
