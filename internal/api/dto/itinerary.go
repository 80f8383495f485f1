package dto

import "itinerary-planner-service/internal/domain"

type PlanItineraryRequest struct {
	Trip    TripRequest `json:"trip" validate:"required"`
	Travel  bool        `json:"travel"`
	Mode    string      `json:"mode" validate:"omitempty,oneof=driving transit"`
	Weather bool        `json:"weather"`
}

type DayBoundsResponse struct {
	Day           int     `json:"day"`
	EarliestStart *string `json:"earliest_start,omitempty"`
	LatestEnd     *string `json:"latest_end,omitempty"`
	CheckIn       *string `json:"check_in,omitempty"`
}

type TravelResponse struct {
	Status    string `json:"status"`
	Mode      string `json:"mode,omitempty"`
	Pairs     int    `json:"pairs"`
	Estimated int    `json:"estimated"`
	Failed    int    `json:"failed"`
}

type ItineraryResponse struct {
	TripID     string              `json:"trip_id"`
	StartDate  string              `json:"start_date"`
	EndDate    string              `json:"end_date"`
	TotalDays  int                 `json:"total_days"`
	Days       []domain.Day        `json:"days"`
	Placements []domain.Placement  `json:"placements"`
	Orphans    []domain.Placement  `json:"orphans,omitempty"`
	Bounds     []DayBoundsResponse `json:"day_bounds"`
	Warnings   []string            `json:"warnings,omitempty"`
	Travel     TravelResponse      `json:"travel"`
}
