package ports

import (
	"context"
	"itinerary-planner-service/internal/domain"
)

// Port: a boundary for reading trips and applying the user edits scheduling cares about.
type TripRepository interface {
	// Return a snapshot of the trip; later edits do not affect it.
	GetTrip(ctx context.Context, id string) (domain.Trip, error)
	ListTrips(ctx context.Context) ([]domain.Trip, error)
	SetPin(ctx context.Context, tripID, activityID string, pin domain.ManualPin) error
	ClearPin(ctx context.Context, tripID, activityID string) error
	// Replace the activity order; ids must be a permutation of the trip's activities.
	Reorder(ctx context.Context, tripID string, activityIDs []string) error
}
