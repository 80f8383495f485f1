package cache

import (
	"context"
	"database/sql"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func newSQLiteCache(t *testing.T) *SQLCache {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := InitSchema(context.Background(), db, SQLite); err != nil {
		t.Fatalf("InitSchema: %v", err)
	}

	c, err := NewSQLCache(db, SQLite)
	if err != nil {
		t.Fatalf("NewSQLCache: %v", err)
	}
	return c
}

func TestSQLiteCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newSQLiteCache(t)

	key := ports.TravelKey{Origin: "35.100000,139.100000", Destination: "35.200000,139.200000", Mode: domain.TravelDriving}
	if _, ok, err := c.GetTravel(ctx, key); err != nil || ok {
		t.Fatalf("GetTravel before put = ok %v, err %v; want miss", ok, err)
	}

	est := ports.TravelEstimate{DurationText: "18m", DurationSeconds: 1080, DistanceText: "7.5 km", DistanceMeters: 7500}
	if err := c.PutTravel(ctx, key, est); err != nil {
		t.Fatalf("PutTravel: %v", err)
	}
	est.DurationText = "20m"
	if err := c.PutTravel(ctx, key, est); err != nil {
		t.Fatalf("PutTravel overwrite: %v", err)
	}

	got, ok, err := c.GetTravel(ctx, key)
	if err != nil || !ok {
		t.Fatalf("GetTravel = ok %v, err %v; want hit", ok, err)
	}
	if got != est {
		t.Fatalf("GetTravel = %+v, want %+v", got, est)
	}

	transit := key
	transit.Mode = domain.TravelTransit
	if _, ok, _ := c.GetTravel(ctx, transit); ok {
		t.Fatalf("transit lookup should miss")
	}

	hnd := domain.Coordinates{Lat: 35.5494, Lng: 139.7798}
	if err := c.PutCoordinates(ctx, "HND Airport", hnd); err != nil {
		t.Fatalf("PutCoordinates: %v", err)
	}
	coords, ok, err := c.GetCoordinates(ctx, "HND Airport")
	if err != nil || !ok || coords != hnd {
		t.Fatalf("GetCoordinates = %+v ok %v err %v", coords, ok, err)
	}
}

func TestSQLiteCachePrune(t *testing.T) {
	ctx := context.Background()
	c := newSQLiteCache(t)

	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now.Add(-48 * time.Hour) }
	if err := c.PutCoordinates(ctx, "old", domain.Coordinates{Lat: 1, Lng: 1}); err != nil {
		t.Fatalf("PutCoordinates: %v", err)
	}
	c.now = func() time.Time { return now }
	if err := c.PutCoordinates(ctx, "fresh", domain.Coordinates{Lat: 2, Lng: 2}); err != nil {
		t.Fatalf("PutCoordinates: %v", err)
	}

	n, err := c.Prune(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if n != 1 {
		t.Fatalf("pruned = %d, want 1", n)
	}

	if _, ok, _ := c.GetCoordinates(ctx, "old"); ok {
		t.Fatalf("old entry should be gone")
	}
	if _, ok, _ := c.GetCoordinates(ctx, "fresh"); !ok {
		t.Fatalf("fresh entry should remain")
	}
}
