package handlers

import (
	"errors"
	"fmt"
	"itinerary-planner-service/internal/api/dto"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
	"itinerary-planner-service/internal/services"
	"net/http"
)

// TripHandler serves trip listings and the schedule edits a user makes by hand.
type TripHandler struct {
	Repo ports.TripRepository
}

func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	trips, err := h.Repo.ListTrips(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.ListTripsResponse{Trips: make([]dto.TripSummaryResponse, 0, len(trips))}
	for _, t := range trips {
		res.Trips = append(res.Trips, dto.TripSummaryResponse{
			ID:             t.ID,
			Destination:    t.Destination,
			StartDate:      t.StartDate,
			EndDate:        t.EndDate,
			Activities:     len(t.Activities),
			Flights:        len(t.Flights),
			Accommodations: len(t.Accommodations),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// SetPin fixes an activity to a day and time. A closed day is always refused;
// a time outside opening hours is accepted only when the request forces it.
func (h *TripHandler) SetPin(w http.ResponseWriter, r *http.Request) {
	tripID := r.PathValue("tripID")
	activityID := r.PathValue("activityID")

	var req dto.PinRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	trip, err := h.Repo.GetTrip(r.Context(), tripID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	idx := trip.ActivityIndex(activityID)
	if idx < 0 {
		writeDomainError(w, r, fmt.Errorf("set pin: %s: %w", activityID, domain.ErrActivityNotFound))
		return
	}

	tripRange, err := trip.DateRange()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	pin := domain.ManualPin{Day: req.Day, Time: req.Time}

	var warning string
	if err := services.CheckPin(trip.Activities[idx], tripRange, pin); err != nil {
		if !req.Force || !errors.Is(err, domain.ErrOutsideOpeningHours) {
			writeDomainError(w, r, err)
			return
		}
		warning = err.Error()
	}

	// CheckPin has already parsed the time.
	at, _ := domain.ParseClock(req.Time)
	pin.Time = domain.FormatClock(at)

	if err := h.Repo.SetPin(r.Context(), tripID, activityID, pin); err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.PinResponse{
		TripID:     tripID,
		ActivityID: activityID,
		Day:        pin.Day,
		Time:       pin.Time,
		Warning:    warning,
	})
}

func (h *TripHandler) ClearPin(w http.ResponseWriter, r *http.Request) {
	tripID := r.PathValue("tripID")
	activityID := r.PathValue("activityID")

	if err := h.Repo.ClearPin(r.Context(), tripID, activityID); err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.PinResponse{TripID: tripID, ActivityID: activityID})
}

// Reorder replaces the activity order, which decides placement order for unpinned activities.
func (h *TripHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	tripID := r.PathValue("tripID")

	var req dto.ReorderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.Repo.Reorder(r.Context(), tripID, req.ActivityIDs); err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
