package routing

import (
	"context"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
	"sync/atomic"
)

type MockLeg struct {
	From, To domain.Coordinates
	Minutes  int
	Meters   int
}

// MockProvider serves fixed estimates for known pairs and fails for the rest.
type MockProvider struct {
	m     map[string]ports.TravelEstimate
	calls atomic.Int64
}

func NewMockProvider(legs []MockLeg) *MockProvider {
	m := make(map[string]ports.TravelEstimate, len(legs))
	for _, l := range legs {
		m[l.From.Key()+"|"+l.To.Key()] = ports.TravelEstimate{
			DurationText:    domain.FormatMinutes(l.Minutes),
			DurationSeconds: l.Minutes * 60,
			DistanceText:    formatKilometers(l.Meters),
			DistanceMeters:  l.Meters,
		}
	}
	return &MockProvider{m: m}
}

func (p *MockProvider) Estimate(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
	mode domain.TravelMode,
) (ports.TravelEstimate, error) {
	p.calls.Add(1)

	if err := ctx.Err(); err != nil {
		return ports.TravelEstimate{}, err
	}

	r, ok := p.m[origin.Key()+"|"+destination.Key()]
	if !ok {
		return ports.TravelEstimate{}, fmt.Errorf("missing pair %s -> %s", origin.Key(), destination.Key())
	}

	return r, nil
}

// Calls reports how many estimates were requested.
func (p *MockProvider) Calls() int { return int(p.calls.Load()) }

// MockGeocoder resolves addresses from a fixed table.
type MockGeocoder struct {
	m     map[string]domain.Coordinates
	calls atomic.Int64
}

func NewMockGeocoder(m map[string]domain.Coordinates) *MockGeocoder {
	return &MockGeocoder{m: m}
}

func (g *MockGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	g.calls.Add(1)

	c, ok := g.m[address]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("unknown address %q", address)
	}
	return c, nil
}

func (g *MockGeocoder) Calls() int { return int(g.calls.Load()) }
