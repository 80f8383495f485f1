package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"itinerary-planner-service/internal/adapters/cache"
	"itinerary-planner-service/internal/adapters/routing"
	"itinerary-planner-service/internal/adapters/weather"
	"itinerary-planner-service/internal/config"
	"itinerary-planner-service/internal/platform/db"
	"itinerary-planner-service/internal/ports"
	"itinerary-planner-service/internal/services"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// cacheSet holds whichever cache backend was configured. All fields are nil for "none".
type cacheSet struct {
	travel  ports.TravelCache
	geocode ports.GeocodeCache
	// pruner is nil for backends that expire entries themselves.
	pruner ports.Pruner
	close  func()
}

func openCaches(ctx context.Context, cfg *config.Config) (cacheSet, error) {
	none := cacheSet{close: func() {}}

	switch cfg.CacheBackend {
	case "sqlite":
		conn, err := db.OpenSQLite(cfg.DBPath)
		if err != nil {
			return none, err
		}
		return sqlCaches(ctx, conn, cache.SQLite)

	case "postgres":
		if cfg.DatabaseURL == "" {
			return none, errors.New("DATABASE_URL is required for the postgres cache")
		}
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return none, err
		}
		return sqlCaches(ctx, conn, cache.Postgres)

	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return none, fmt.Errorf("open caches: redis %s: %w", cfg.RedisAddr, err)
		}
		rc := cache.NewRedisCache(client, cfg.CacheTTL)
		return cacheSet{
			travel:  rc,
			geocode: rc,
			close:   func() { client.Close() },
		}, nil
	}

	return none, nil
}

func sqlCaches(ctx context.Context, conn *sql.DB, dialect cache.Dialect) (cacheSet, error) {
	none := cacheSet{close: func() {}}

	if err := cache.InitSchema(ctx, conn, dialect); err != nil {
		conn.Close()
		return none, err
	}

	sc, err := cache.NewSQLCache(conn, dialect)
	if err != nil {
		conn.Close()
		return none, err
	}

	return cacheSet{
		travel:  sc,
		geocode: sc,
		pruner:  sc,
		close:   func() { conn.Close() },
	}, nil
}

// newCollaborators builds the routing, geocoding and forecast clients, with
// routing and geocoding wrapped in the configured cache.
func newCollaborators(cfg *config.Config, caches cacheSet) (services.Collaborators, error) {
	var c services.Collaborators

	switch cfg.RoutingProvider {
	case "google":
		p, err := routing.NewGoogleProvider(cfg.GoogleMapsAPIKey)
		if err != nil {
			return c, err
		}
		c.Routing, c.Geocoder = withCaches(p, p, caches)

	case "ors":
		p, err := routing.NewORSProvider(cfg.ORSAPIKey)
		if err != nil {
			return c, err
		}
		c.Routing, c.Geocoder = withCaches(p, p, caches)

	default:
		log.Println("No routing provider configured (travel legs disabled)")
	}

	if cfg.OpenWeatherAPIKey != "" {
		w, err := weather.NewOpenWeather(cfg.OpenWeatherAPIKey)
		if err != nil {
			return c, err
		}
		c.Forecasts = w
	}

	return c, nil
}

func withCaches(r ports.RoutingProvider, g ports.Geocoder, caches cacheSet) (ports.RoutingProvider, ports.Geocoder) {
	if caches.travel != nil {
		r = routing.NewCachedProvider(r, caches.travel)
	}
	if caches.geocode != nil {
		g = routing.NewCachedGeocoder(g, caches.geocode)
	}
	return r, g
}
