package services

import (
	"context"
	"errors"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
	"log"
)

type TravelStatus string

const (
	TravelSkipped    TravelStatus = "skipped"
	TravelComplete   TravelStatus = "complete"
	TravelPartial    TravelStatus = "partial"
	TravelSuperseded TravelStatus = "superseded"
)

// Itinerary is the full result of one scheduling pass over a trip snapshot.
type Itinerary struct {
	TripID       string
	Range        domain.DateRange
	Bounds       []domain.DayBounds
	CheckIns     map[int]float64
	Placements   []domain.Placement
	Agenda       domain.Agenda
	Warnings     []string
	TravelStatus TravelStatus
	Travel       TravelSummary
}

// PlanItinerary runs constraint collection, slot allocation and agenda
// assembly over trip. It is pure and deterministic; the only error is an
// unreadable trip date range.
func PlanItinerary(trip domain.Trip) (*Itinerary, error) {
	tripRange, err := trip.DateRange()
	if err != nil {
		return nil, fmt.Errorf("plan itinerary: %w", err)
	}

	constraints := CollectConstraints(trip.Flights, trip.Accommodations, tripRange)
	placements := AllocateSlots(trip.Activities, constraints, tripRange, ParseOpeningHours)
	agenda := AssembleAgenda(trip.Activities, placements, trip.Flights, trip.Accommodations, tripRange)

	return &Itinerary{
		TripID:       trip.ID,
		Range:        tripRange,
		Bounds:       constraints.Bounds,
		CheckIns:     constraints.CheckIns,
		Placements:   placements,
		Agenda:       agenda,
		Warnings:     constraints.Warnings,
		TravelStatus: TravelSkipped,
	}, nil
}

type BuildItineraryRequest struct {
	WithTravel  bool
	Travel      TravelOptions
	WithWeather bool
}

// Collaborators are the external services an itinerary may be decorated with.
// Any of them may be nil.
type Collaborators struct {
	Routing   ports.RoutingProvider
	Geocoder  ports.Geocoder
	Forecasts ports.ForecastProvider
	Latest    *LatestOnly
}

// BuildItinerary plans trip and then decorates the agenda with travel legs and
// forecasts as requested. Decoration failures never fail the call: travel
// lookups that fail are left out and a forecast error only drops the weather.
// When a newer build for the same trip starts, this one reports its travel as
// superseded and keeps the undecorated agenda.
func BuildItinerary(
	ctx context.Context,
	trip domain.Trip,
	req BuildItineraryRequest,
	c Collaborators,
) (*Itinerary, error) {
	it, err := PlanItinerary(trip)
	if err != nil {
		return nil, err
	}

	for _, w := range it.Warnings {
		log.Printf("plan itinerary: trip=%s skipped record: %s", trip.ID, w)
	}

	if req.WithTravel && c.Routing != nil {
		travelCtx := ctx
		done := func() {}
		if c.Latest != nil {
			travelCtx, done = c.Latest.Start(ctx, trip.ID)
		}

		agenda, summary, err := AugmentTravel(travelCtx, it.Agenda, req.Travel, c.Routing, c.Geocoder)
		done()

		switch {
		case err == nil:
			it.Agenda = agenda
			it.Travel = summary
			it.TravelStatus = TravelComplete
			if summary.Failed > 0 {
				it.TravelStatus = TravelPartial
			}
		case errors.Is(err, context.Canceled) && ctx.Err() == nil:
			it.TravelStatus = TravelSuperseded
		default:
			return nil, fmt.Errorf("build itinerary: travel: %w", err)
		}
	}

	if req.WithWeather && c.Forecasts != nil && trip.Destination != "" {
		forecasts, err := c.Forecasts.Forecast(ctx, trip.Destination)
		if err != nil {
			log.Printf("build itinerary: trip=%s forecast err=%v", trip.ID, err)
		} else {
			it.Agenda = AttachForecasts(it.Agenda, forecasts)
		}
	}

	return it, nil
}
