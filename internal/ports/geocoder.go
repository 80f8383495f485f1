package ports

import (
	"context"
	"itinerary-planner-service/internal/domain"
)

// Contract for resolving a free-text address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}
