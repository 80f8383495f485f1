package ports

import (
	"context"
	"itinerary-planner-service/internal/domain"
	"time"
)

// TravelKey identifies a cached estimate.
type TravelKey struct {
	Origin      string
	Destination string
	Mode        domain.TravelMode
}

// Port: persistent store for travel estimates. A miss is reported with ok=false, not an error.
type TravelCache interface {
	GetTravel(ctx context.Context, key TravelKey) (TravelEstimate, bool, error)
	PutTravel(ctx context.Context, key TravelKey, est TravelEstimate) error
}

// Port: persistent store for address -> coordinate lookups.
type GeocodeCache interface {
	GetCoordinates(ctx context.Context, address string) (domain.Coordinates, bool, error)
	PutCoordinates(ctx context.Context, address string, c domain.Coordinates) error
}

// Optional capability of caches that expire rows on demand.
type Pruner interface {
	Prune(ctx context.Context, olderThan time.Time) (int64, error)
}
