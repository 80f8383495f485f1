package api

import (
	"itinerary-planner-service/internal/adapters/export"
	"itinerary-planner-service/internal/api/handlers"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
	"itinerary-planner-service/internal/services"
	"net/http"
	"time"
)

type RouterConfig struct {
	Repo              ports.TripRepository
	Collaborators     services.Collaborators
	DefaultMode       domain.TravelMode
	TravelConcurrency int
	// Zone trip-local clock times are written in for calendar export.
	Location *time.Location
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	tripHandler := &handlers.TripHandler{Repo: cfg.Repo}
	itineraryHandler := &handlers.ItineraryHandler{
		Repo:          cfg.Repo,
		Collaborators: cfg.Collaborators,
		DefaultMode:   cfg.DefaultMode,
		Concurrency:   cfg.TravelConcurrency,
		ICS:           export.NewICS(cfg.Location),
	}

	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("GET /trips", tripHandler.List)
	mux.HandleFunc("GET /trips/{tripID}/itinerary", itineraryHandler.Get)
	mux.HandleFunc("GET /trips/{tripID}/itinerary.ics", itineraryHandler.Calendar)
	mux.HandleFunc("GET /trips/{tripID}/itinerary.pdf", itineraryHandler.Printable)
	mux.HandleFunc("PUT /trips/{tripID}/activities/{activityID}/pin", tripHandler.SetPin)
	mux.HandleFunc("DELETE /trips/{tripID}/activities/{activityID}/pin", tripHandler.ClearPin)
	mux.HandleFunc("PUT /trips/{tripID}/activities/order", tripHandler.Reorder)
	mux.HandleFunc("POST /itineraries", itineraryHandler.Plan)

	return requestIDMiddleware(loggingMiddleware(mux))
}
