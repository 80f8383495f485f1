package routing

import (
	"context"
	"errors"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/platform/httpclient"
	"itinerary-planner-service/internal/platform/obs"
	"itinerary-planner-service/internal/ports"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// GoogleProvider implements RoutingProvider and Geocoder with the Google Maps
// Directions and Geocoding web services. It serves driving and transit.
type GoogleProvider struct {
	client   *httpclient.Client
	apiKey   string
	baseURL  string
	geocodes singleflight.Group
}

type textValue struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

type directionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		Legs []struct {
			Duration textValue `json:"duration"`
			Distance textValue `json:"distance"`
		} `json:"legs"`
	} `json:"routes"`
}

type googleGeocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func NewGoogleProvider(apiKey string, opts ...httpclient.Option) (*GoogleProvider, error) {
	if apiKey == "" {
		return nil, errors.New("google maps api key is empty")
	}

	return &GoogleProvider{
		client:  httpclient.New(10*time.Second, opts...),
		apiKey:  apiKey,
		baseURL: "https://maps.googleapis.com/maps/api",
	}, nil
}

// WithBaseURL points the provider at another endpoint, e.g. a test server.
func (g *GoogleProvider) WithBaseURL(u string) *GoogleProvider {
	g.baseURL = strings.TrimRight(u, "/")
	return g
}

func (g *GoogleProvider) Estimate(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
	mode domain.TravelMode,
) (_ ports.TravelEstimate, err error) {
	defer obs.Time(ctx, "google.Estimate")(&err)

	if !mode.Valid() {
		return ports.TravelEstimate{}, fmt.Errorf("google estimate %q: %w", mode, ports.ErrModeUnsupported)
	}

	q := url.Values{}
	q.Set("origin", origin.Key())
	q.Set("destination", destination.Key())
	q.Set("mode", string(mode))
	q.Set("key", g.apiKey)

	var dr directionsResponse
	if err := g.client.GetJSON(ctx, g.baseURL+"/directions/json?"+q.Encode(), &dr); err != nil {
		return ports.TravelEstimate{}, fmt.Errorf("google directions request: %w", err)
	}

	if dr.Status != "OK" {
		return ports.TravelEstimate{}, fmt.Errorf("google directions: status %s: %s", dr.Status, dr.ErrorMessage)
	}
	if len(dr.Routes) == 0 || len(dr.Routes[0].Legs) == 0 {
		return ports.TravelEstimate{}, fmt.Errorf("google directions: no route from %s to %s", origin.Key(), destination.Key())
	}

	leg := dr.Routes[0].Legs[0]
	return ports.TravelEstimate{
		DurationText:    leg.Duration.Text,
		DurationSeconds: leg.Duration.Value,
		DistanceText:    leg.Distance.Text,
		DistanceMeters:  leg.Distance.Value,
	}, nil
}

// Geocode resolves an address. Concurrent lookups of the same address share
// one request.
func (g *GoogleProvider) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	norm := normalize(address)
	if norm == "" {
		return domain.Coordinates{}, errors.New("google geocode: address must be non-empty")
	}

	return sharedGeocode(ctx, &g.geocodes, norm, func(ctx context.Context) (domain.Coordinates, error) {
		return g.geocode(ctx, norm)
	})
}

func (g *GoogleProvider) geocode(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "google.Geocode")(&err)

	q := url.Values{}
	q.Set("address", address)
	q.Set("key", g.apiKey)

	var gr googleGeocodeResponse
	if err := g.client.GetJSON(ctx, g.baseURL+"/geocode/json?"+q.Encode(), &gr); err != nil {
		return domain.Coordinates{}, fmt.Errorf("google geocode %q: %w", address, err)
	}

	if gr.Status != "OK" || len(gr.Results) == 0 {
		return domain.Coordinates{}, fmt.Errorf("no geocode results for %q: status %s", address, gr.Status)
	}

	loc := gr.Results[0].Geometry.Location
	return domain.Coordinates{Lat: loc.Lat, Lng: loc.Lng}, nil
}
