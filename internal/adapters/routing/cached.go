package routing

import (
	"context"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
	"log"
)

// CachedProvider checks a persistent cache before asking the wrapped
// provider. Cache failures are logged and fall through to the provider.
type CachedProvider struct {
	next  ports.RoutingProvider
	cache ports.TravelCache
}

func NewCachedProvider(next ports.RoutingProvider, cache ports.TravelCache) *CachedProvider {
	return &CachedProvider{next: next, cache: cache}
}

func (p *CachedProvider) Estimate(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
	mode domain.TravelMode,
) (ports.TravelEstimate, error) {
	key := ports.TravelKey{Origin: origin.Key(), Destination: destination.Key(), Mode: mode}

	est, ok, err := p.cache.GetTravel(ctx, key)
	if err != nil {
		log.Printf("travel cache read failed: %v", err)
	} else if ok {
		return est, nil
	}

	est, err = p.next.Estimate(ctx, origin, destination, mode)
	if err != nil {
		return ports.TravelEstimate{}, fmt.Errorf("cached estimate: %w", err)
	}

	if err := p.cache.PutTravel(ctx, key, est); err != nil {
		log.Printf("travel cache write failed: %v", err)
	}

	return est, nil
}

// CachedGeocoder is the Geocoder counterpart of CachedProvider.
type CachedGeocoder struct {
	next  ports.Geocoder
	cache ports.GeocodeCache
}

func NewCachedGeocoder(next ports.Geocoder, cache ports.GeocodeCache) *CachedGeocoder {
	return &CachedGeocoder{next: next, cache: cache}
}

func (g *CachedGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	norm := normalize(address)

	c, ok, err := g.cache.GetCoordinates(ctx, norm)
	if err != nil {
		log.Printf("geocode cache read failed: %v", err)
	} else if ok {
		return c, nil
	}

	c, err = g.next.Geocode(ctx, norm)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("cached geocode: %w", err)
	}

	if err := g.cache.PutCoordinates(ctx, norm, c); err != nil {
		log.Printf("geocode cache write failed: %v", err)
	}

	return c, nil
}
