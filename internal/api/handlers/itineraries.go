package handlers

import (
	"bytes"
	"context"
	"fmt"
	"itinerary-planner-service/internal/adapters/export"
	"itinerary-planner-service/internal/api/dto"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
	"itinerary-planner-service/internal/services"
	"log"
	"net/http"
	"net/url"
	"strconv"
)

// ItineraryHandler plans itineraries for stored trips and for posted snapshots,
// and renders them as JSON, iCalendar or PDF.
type ItineraryHandler struct {
	Repo          ports.TripRepository
	Collaborators services.Collaborators
	DefaultMode   domain.TravelMode
	Concurrency   int
	ICS           *export.ICS
}

// Get serves GET /trips/{tripID}/itinerary?travel=&mode=&weather=.
func (h *ItineraryHandler) Get(w http.ResponseWriter, r *http.Request) {
	_, it, ok := h.planStored(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, toItineraryResponse(it))
}

func (h *ItineraryHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	trip, it, ok := h.planStored(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.ICS.Write(&buf, trip.ID, tripTitle(trip), it.Agenda); err != nil {
		log.Printf("ics export failed: trip=%s err=%v", trip.ID, err)
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	writeAttachment(w, r, "text/calendar; charset=utf-8", trip.ID+".ics", buf.Bytes())
}

func (h *ItineraryHandler) Printable(w http.ResponseWriter, r *http.Request) {
	trip, it, ok := h.planStored(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WritePDF(&buf, tripTitle(trip), it.Agenda); err != nil {
		log.Printf("pdf export failed: trip=%s err=%v", trip.ID, err)
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	writeAttachment(w, r, "application/pdf", trip.ID+".pdf", buf.Bytes())
}

// Plan serves POST /itineraries: the whole trip arrives in the body and nothing is stored.
func (h *ItineraryHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanItineraryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	mode := h.DefaultMode
	if req.Mode != "" {
		mode = domain.TravelMode(req.Mode)
	}

	trip := req.Trip.ToDomain()
	if err := trip.Validate(); err != nil {
		writeDomainError(w, r, err)
		return
	}

	it, err := h.build(r.Context(), trip, services.BuildItineraryRequest{
		WithTravel:  req.Travel,
		Travel:      services.TravelOptions{Mode: mode, Concurrency: h.Concurrency},
		WithWeather: req.Weather,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toItineraryResponse(it))
}

func (h *ItineraryHandler) planStored(w http.ResponseWriter, r *http.Request) (domain.Trip, *services.Itinerary, bool) {
	req, err := h.parseQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return domain.Trip{}, nil, false
	}

	trip, err := h.Repo.GetTrip(r.Context(), r.PathValue("tripID"))
	if err != nil {
		writeDomainError(w, r, err)
		return domain.Trip{}, nil, false
	}

	it, err := h.build(r.Context(), trip, req)
	if err != nil {
		writeDomainError(w, r, err)
		return domain.Trip{}, nil, false
	}
	return trip, it, true
}

func (h *ItineraryHandler) build(ctx context.Context, trip domain.Trip, req services.BuildItineraryRequest) (*services.Itinerary, error) {
	return services.BuildItinerary(ctx, trip, req, h.Collaborators)
}

func (h *ItineraryHandler) parseQuery(q url.Values) (services.BuildItineraryRequest, error) {
	req := services.BuildItineraryRequest{
		Travel: services.TravelOptions{Mode: h.DefaultMode, Concurrency: h.Concurrency},
	}

	var err error
	if req.WithTravel, err = boolParam(q, "travel"); err != nil {
		return req, err
	}
	if req.WithWeather, err = boolParam(q, "weather"); err != nil {
		return req, err
	}

	if m := q.Get("mode"); m != "" {
		mode := domain.TravelMode(m)
		if !mode.Valid() {
			return req, fmt.Errorf("mode must be %q or %q", domain.TravelDriving, domain.TravelTransit)
		}
		req.Travel.Mode = mode
	}
	return req, nil
}

func boolParam(q url.Values, name string) (bool, error) {
	raw := q.Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean", name)
	}
	return v, nil
}

func writeAttachment(w http.ResponseWriter, r *http.Request, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Printf("write failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func tripTitle(t domain.Trip) string {
	if t.Destination == "" {
		return t.ID
	}
	return t.Destination
}

func toItineraryResponse(it *services.Itinerary) dto.ItineraryResponse {
	res := dto.ItineraryResponse{
		TripID:     it.TripID,
		StartDate:  it.Range.Start.String(),
		EndDate:    it.Range.End.String(),
		TotalDays:  it.Range.TotalDays(),
		Days:       it.Agenda.Days,
		Placements: it.Placements,
		Orphans:    it.Agenda.Orphans,
		Bounds:     make([]dto.DayBoundsResponse, 0, len(it.Bounds)),
		Warnings:   it.Warnings,
		Travel: dto.TravelResponse{
			Status:    string(it.TravelStatus),
			Pairs:     it.Travel.Pairs,
			Estimated: it.Travel.Estimated,
			Failed:    it.Travel.Failed,
		},
	}

	if it.TravelStatus == services.TravelComplete || it.TravelStatus == services.TravelPartial {
		res.Travel.Mode = string(it.Travel.Mode)
	}

	for i, b := range it.Bounds {
		day := i + 1
		db := dto.DayBoundsResponse{
			Day:           day,
			EarliestStart: clockPtr(b.EarliestStart),
			LatestEnd:     clockPtr(b.LatestEnd),
		}
		if at, ok := it.CheckIns[day]; ok {
			db.CheckIn = clockPtr(&at)
		}
		res.Bounds = append(res.Bounds, db)
	}
	return res
}

func clockPtr(h *float64) *string {
	if h == nil {
		return nil
	}
	s := domain.FormatClock(*h)
	return &s
}
