package services

import (
	"context"
	"errors"
	"itinerary-planner-service/internal/adapters/routing"
	"itinerary-planner-service/internal/domain"
	"reflect"
	"testing"
)

type geocoderFunc func(ctx context.Context, address string) (domain.Coordinates, error)

func (f geocoderFunc) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	return f(ctx, address)
}

type staticForecasts struct {
	days []domain.DayForecast
	err  error
}

func (s staticForecasts) Forecast(ctx context.Context, destination string) ([]domain.DayForecast, error) {
	return s.days, s.err
}

func tokyoTrip() domain.Trip {
	return domain.Trip{
		ID:          "tokyo",
		Destination: "Tokyo",
		StartDate:   "2026-01-10",
		EndDate:     "2026-01-11",
		Activities: []domain.Activity{
			{ID: "a1", Name: "Meiji Shrine", Location: shrine, Category: domain.CategoryAttraction},
			{ID: "a2", Name: "Tokyo Tower", Location: tower, Category: domain.CategoryAttraction},
		},
	}
}

func TestPlanItinerary(t *testing.T) {
	trip := tokyoTrip()
	trip.Activities = append(trip.Activities, domain.Activity{
		ID:        "a3",
		Name:      "Sky Tree",
		ManualPin: &domain.ManualPin{Day: 5, Time: "10:00"},
	})

	it, err := PlanItinerary(trip)
	if err != nil {
		t.Fatalf("PlanItinerary: %v", err)
	}

	if it.Range.TotalDays() != 2 || len(it.Agenda.Days) != 2 || len(it.Bounds) != 2 {
		t.Fatalf("itinerary spans %d days, agenda %d, bounds %d; want 2", it.Range.TotalDays(), len(it.Agenda.Days), len(it.Bounds))
	}
	if len(it.Placements) != 3 {
		t.Fatalf("len(Placements) = %d, want 3", len(it.Placements))
	}
	if len(it.Agenda.Orphans) != 1 || it.Agenda.Orphans[0].ActivityID != "a3" {
		t.Fatalf("orphans = %+v, want a3", it.Agenda.Orphans)
	}
	if it.TravelStatus != TravelSkipped {
		t.Fatalf("travel status = %q, want skipped", it.TravelStatus)
	}

	again, _ := PlanItinerary(trip)
	if !reflect.DeepEqual(it.Agenda, again.Agenda) {
		t.Fatalf("agenda not deterministic")
	}
}

func TestPlanItineraryInvalidRange(t *testing.T) {
	trip := tokyoTrip()
	trip.StartDate, trip.EndDate = trip.EndDate, trip.StartDate

	if _, err := PlanItinerary(trip); !errors.Is(err, domain.ErrInvalidRange) {
		t.Fatalf("err = %v, want ErrInvalidRange", err)
	}
}

func TestBuildItinerary(t *testing.T) {
	trip := tokyoTrip()
	trip.EndDate = trip.StartDate
	trip.Activities[1].Category = domain.CategoryRestaurant

	provider := routing.NewMockProvider([]routing.MockLeg{{From: shrine, To: tower, Minutes: 25, Meters: 8000}})
	forecasts := staticForecasts{days: []domain.DayForecast{{Date: "2026-01-10", TempF: 45}}}

	it, err := BuildItinerary(context.Background(), trip, BuildItineraryRequest{
		WithTravel:  true,
		Travel:      TravelOptions{Mode: domain.TravelDriving},
		WithWeather: true,
	}, Collaborators{Routing: provider, Forecasts: forecasts, Latest: NewLatestOnly()})
	if err != nil {
		t.Fatalf("BuildItinerary: %v", err)
	}

	if it.TravelStatus != TravelComplete {
		t.Fatalf("travel status = %q, want complete", it.TravelStatus)
	}
	day1 := it.Agenda.Days[0]
	if len(day1.Entries) != 2 || day1.Entries[0].TravelToNext == nil {
		t.Fatalf("day 1 = %+v, want shrine then restaurant with a travel leg", day1.Entries)
	}
	if day1.TotalTravelText != "25m" {
		t.Fatalf("day 1 travel = %q, want 25m", day1.TotalTravelText)
	}
	if day1.Forecast == nil || day1.Forecast.TempF != 45 {
		t.Fatalf("day 1 forecast = %+v", day1.Forecast)
	}
}

func TestBuildItineraryForecastFailureIsNotFatal(t *testing.T) {
	it, err := BuildItinerary(context.Background(), tokyoTrip(), BuildItineraryRequest{WithWeather: true},
		Collaborators{Forecasts: staticForecasts{err: errors.New("weather down")}})
	if err != nil {
		t.Fatalf("BuildItinerary: %v", err)
	}
	for _, d := range it.Agenda.Days {
		if d.Forecast != nil {
			t.Fatalf("day %d has a forecast after a provider failure", d.Number)
		}
	}
}

func TestBuildItinerarySuperseded(t *testing.T) {
	trip := tokyoTrip()
	trip.Accommodations = []domain.Accommodation{{ID: "h1", Address: "Park Hotel Tokyo", CheckIn: "2026-01-10", CheckOut: "2026-01-11"}}

	latest := NewLatestOnly()
	// A newer build for the same trip starts while this one is geocoding.
	geocoder := geocoderFunc(func(ctx context.Context, address string) (domain.Coordinates, error) {
		_, done := latest.Start(context.Background(), trip.ID)
		defer done()
		return parkHotel, nil
	})

	it, err := BuildItinerary(context.Background(), trip, BuildItineraryRequest{WithTravel: true},
		Collaborators{Routing: routing.NewMockProvider(nil), Geocoder: geocoder, Latest: latest})
	if err != nil {
		t.Fatalf("BuildItinerary: %v", err)
	}

	if it.TravelStatus != TravelSuperseded {
		t.Fatalf("travel status = %q, want superseded", it.TravelStatus)
	}
	if len(it.Agenda.Days) != 2 {
		t.Fatalf("superseded build should still return the agenda")
	}
}
