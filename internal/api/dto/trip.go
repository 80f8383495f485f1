package dto

import "itinerary-planner-service/internal/domain"

type TripSummaryResponse struct {
	ID             string `json:"id"`
	Destination    string `json:"destination"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Activities     int    `json:"activities"`
	Flights        int    `json:"flights"`
	Accommodations int    `json:"accommodations"`
}

type ListTripsResponse struct {
	Trips []TripSummaryResponse `json:"trips"`
}

// TripRequest is a full trip snapshot posted for stateless planning.
type TripRequest struct {
	ID             string                 `json:"id" validate:"required"`
	Destination    string                 `json:"destination"`
	StartDate      string                 `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate        string                 `json:"end_date" validate:"required,datetime=2006-01-02"`
	Activities     []domain.Activity      `json:"activities"`
	Flights        []domain.Flight        `json:"flights"`
	Accommodations []domain.Accommodation `json:"accommodations"`
}

func (t TripRequest) ToDomain() domain.Trip {
	return domain.Trip{
		ID:             t.ID,
		Destination:    t.Destination,
		StartDate:      t.StartDate,
		EndDate:        t.EndDate,
		Activities:     t.Activities,
		Flights:        t.Flights,
		Accommodations: t.Accommodations,
	}
}
