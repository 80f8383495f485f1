package main

import (
	"context"
	"errors"
	"itinerary-planner-service/internal/adapters/repositories"
	"itinerary-planner-service/internal/api"
	"itinerary-planner-service/internal/config"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/platform/jobs"
	"itinerary-planner-service/internal/services"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires concrete adapters (caches, routing, weather) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load(config.Get("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo := repositories.NewMemoryTripRepository()
	if n, err := repositories.SeedFromJSON(repo, cfg.SeedPath); err != nil {
		log.Printf("seed skipped: path=%s err=%v", cfg.SeedPath, err)
	} else {
		log.Printf("seeded trips=%d path=%s", n, cfg.SeedPath)
	}

	caches, err := openCaches(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer caches.close()

	collab, err := newCollaborators(cfg, caches)
	if err != nil {
		log.Fatal(err)
	}
	collab.Latest = services.NewLatestOnly()

	if caches.pruner != nil {
		scheduler, err := jobs.Schedule(cfg.PruneSchedule, &jobs.CachePruner{
			Pruner:  caches.pruner,
			TTL:     cfg.CacheTTL,
			Timeout: time.Minute,
		})
		if err != nil {
			log.Fatal(err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	router := api.NewRouter(api.RouterConfig{
		Repo:              repo,
		Collaborators:     collab,
		DefaultMode:       domain.TravelMode(cfg.DefaultTravelMode),
		TravelConcurrency: cfg.TravelConcurrency,
		Location:          cfg.Location(),
	})

	// Timeouts are tuned for cold-cache travel lookups (external API latency).
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf(
			"Server listening addr=:%s routing=%s cache=%s weather=%t",
			cfg.Port, cfg.RoutingProvider, cfg.CacheBackend, collab.Forecasts != nil,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server failed: err=%v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown failed: err=%v", err)
	}
}
