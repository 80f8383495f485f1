package routing

import (
	"context"
	"errors"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/platform/httpclient"
	"itinerary-planner-service/internal/platform/obs"
	"itinerary-planner-service/internal/ports"
	"math"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// ORSProvider implements RoutingProvider and Geocoder using OpenRouteService.
// ORS has no public transit routing, so only driving estimates are served.
//
// The provider is safe for concurrent use.
type ORSProvider struct {
	client   *httpclient.Client
	baseURL  string
	profile  string
	geocodes singleflight.Group
}

type matrixRequest struct {
	Locations    [][]float64 `json:"locations"`
	Destinations []int       `json:"destinations"`
	Metrics      []string    `json:"metrics"`
	Sources      []int       `json:"sources"`
}

type matrixResponse struct {
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

type orsGeocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

func NewORSProvider(apiKey string, opts ...httpclient.Option) (*ORSProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	opts = append([]httpclient.Option{httpclient.WithHeader("Authorization", apiKey)}, opts...)

	return &ORSProvider{
		client:  httpclient.New(10*time.Second, opts...),
		baseURL: "https://api.openrouteservice.org",
		profile: "driving-car",
	}, nil
}

// WithBaseURL points the provider at another ORS deployment.
func (o *ORSProvider) WithBaseURL(u string) *ORSProvider {
	o.baseURL = strings.TrimRight(u, "/")
	return o
}

// Estimate fetches a one-cell matrix from origin to destination.
func (o *ORSProvider) Estimate(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
	mode domain.TravelMode,
) (_ ports.TravelEstimate, err error) {
	defer obs.Time(ctx, "ors.Estimate")(&err)

	if mode != domain.TravelDriving {
		return ports.TravelEstimate{}, fmt.Errorf("ors estimate %s: %w", mode, ports.ErrModeUnsupported)
	}

	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.baseURL, o.profile)
	body := matrixRequest{
		Locations:    [][]float64{origin.CoordsToList(), destination.CoordsToList()},
		Destinations: []int{1},
		Metrics:      []string{"distance", "duration"},
		Sources:      []int{0},
	}

	var mr matrixResponse
	if err := o.client.PostJSON(ctx, endpoint, body, &mr); err != nil {
		return ports.TravelEstimate{}, fmt.Errorf("ors matrix request: %w", err)
	}

	if len(mr.Distances) != 1 || len(mr.Durations) != 1 ||
		len(mr.Distances[0]) != 1 || len(mr.Durations[0]) != 1 {
		return ports.TravelEstimate{}, fmt.Errorf(
			"ors matrix: expected 1x1 result; got distances=%d durations=%d",
			len(mr.Distances), len(mr.Durations),
		)
	}

	meters, seconds := mr.Distances[0][0], mr.Durations[0][0]
	if meters == nil || seconds == nil {
		return ports.TravelEstimate{}, fmt.Errorf("ors matrix: no route from %s to %s", origin.Key(), destination.Key())
	}

	// ORS returns float metrics; round to whole units.
	est := ports.TravelEstimate{
		DistanceMeters:  int(math.Round(*meters)),
		DurationSeconds: int(math.Round(*seconds)),
	}
	est.DurationText = domain.FormatMinutes(est.DurationMinutes())
	est.DistanceText = formatKilometers(est.DistanceMeters)

	return est, nil
}

// Geocode resolves an address with /geocode/search. Concurrent lookups of the
// same address share one request.
func (o *ORSProvider) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	norm := normalize(address)
	if norm == "" {
		return domain.Coordinates{}, errors.New("ors geocode: address must be non-empty")
	}

	return sharedGeocode(ctx, &o.geocodes, norm, func(ctx context.Context) (domain.Coordinates, error) {
		return o.geocode(ctx, norm)
	})
}

func (o *ORSProvider) geocode(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	q := url.Values{}
	q.Set("text", address)
	q.Set("size", "1")
	endpoint := o.baseURL + "/geocode/search?" + q.Encode()

	var decoded orsGeocodeResponse
	if err := o.client.GetJSON(ctx, endpoint, &decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("ors geocode %q: %w", address, err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, fmt.Errorf("no geocode results for %q", address)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinates{}, fmt.Errorf("invalid coordinate format for %q", address)
	}

	return domain.Coordinates{Lng: coords[0], Lat: coords[1]}, nil
}

// normalize collapses whitespace so equivalent addresses share cache keys.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func formatKilometers(meters int) string {
	if meters < 1000 {
		return fmt.Sprintf("%d m", meters)
	}
	return fmt.Sprintf("%.1f km", float64(meters)/1000)
}
