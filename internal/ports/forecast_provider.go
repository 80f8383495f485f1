package ports

import (
	"context"
	"itinerary-planner-service/internal/domain"
)

// Contract for daily weather readings at a destination.
type ForecastProvider interface {
	Forecast(ctx context.Context, destination string) ([]domain.DayForecast, error)
}
