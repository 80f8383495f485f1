package routing

import (
	"context"
	"itinerary-planner-service/internal/domain"
	"time"

	"golang.org/x/sync/singleflight"
)

// Upper bound on one shared geocode request, since it no longer follows any caller's deadline.
const sharedGeocodeTimeout = 20 * time.Second

// sharedGeocode runs fetch once per in-flight key. The request is detached from
// the caller that started it, so cancelling one caller never fails the others;
// each caller still stops waiting when its own ctx is done.
func sharedGeocode(
	ctx context.Context,
	group *singleflight.Group,
	key string,
	fetch func(context.Context) (domain.Coordinates, error),
) (domain.Coordinates, error) {
	ch := group.DoChan(key, func() (any, error) {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedGeocodeTimeout)
		defer cancel()
		return fetch(shared)
	})

	select {
	case <-ctx.Done():
		return domain.Coordinates{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domain.Coordinates{}, res.Err
		}
		return res.Val.(domain.Coordinates), nil
	}
}
