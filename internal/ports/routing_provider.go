package ports

import (
	"context"
	"errors"
	"itinerary-planner-service/internal/domain"
)

// ErrModeUnsupported is returned by providers that cannot route a travel mode.
var ErrModeUnsupported = errors.New("travel mode not supported by provider")

// Travel duration and distance between two points.
type TravelEstimate struct {
	DurationText    string
	DurationSeconds int
	DistanceText    string
	DistanceMeters  int
}

// DurationMinutes rounds the duration to whole minutes.
func (e TravelEstimate) DurationMinutes() int {
	return (e.DurationSeconds + 30) / 60
}

// Contract for estimating travel between coordinates.
type RoutingProvider interface {
	// Return an estimate for travelling from origin to destination with mode.
	Estimate(ctx context.Context, origin, destination domain.Coordinates, mode domain.TravelMode) (TravelEstimate, error)
}
