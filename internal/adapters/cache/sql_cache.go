package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/platform/obs"
	"itinerary-planner-service/internal/ports"
	"strings"
	"time"
)

// SQLCache stores travel estimates and geocodes in Postgres or SQLite.
// Rows carry their insert time so stale entries can be pruned.
type SQLCache struct {
	DB  *sql.DB
	q   queries
	now func() time.Time
}

func NewSQLCache(db *sql.DB, dialect Dialect) (*SQLCache, error) {
	q, ok := dialect.queries()
	if !ok {
		return nil, fmt.Errorf("sql cache: unknown dialect %q", dialect)
	}
	return &SQLCache{DB: db, q: q, now: time.Now}, nil
}

// InitSchema creates the cache tables if they do not exist.
func InitSchema(ctx context.Context, db *sql.DB, dialect Dialect) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	q, ok := dialect.queries()
	if !ok {
		return fmt.Errorf("init schema: unknown dialect %q", dialect)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range q.schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

func (s *SQLCache) GetTravel(ctx context.Context, key ports.TravelKey) (_ ports.TravelEstimate, _ bool, err error) {
	defer obs.Time(ctx, "travel.cache.Get")(&err)

	if s.DB == nil {
		return ports.TravelEstimate{}, false, errors.New("travel cache: db is nil")
	}

	var est ports.TravelEstimate
	err = s.DB.QueryRowContext(ctx, s.q.getTravel, key.Origin, key.Destination, string(key.Mode)).
		Scan(&est.DurationText, &est.DurationSeconds, &est.DistanceText, &est.DistanceMeters)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.TravelEstimate{}, false, nil
	}
	if err != nil {
		return ports.TravelEstimate{}, false, fmt.Errorf("get travel cache: query travel_cache table: %w", err)
	}

	return est, true, nil
}

func (s *SQLCache) PutTravel(ctx context.Context, key ports.TravelKey, est ports.TravelEstimate) error {
	if s.DB == nil {
		return errors.New("travel cache: db is nil")
	}

	if key.Origin == "" || key.Destination == "" {
		return errors.New("insert travel cache: origin and destination must not be empty")
	}

	_, err := s.DB.ExecContext(ctx, s.q.putTravel,
		key.Origin, key.Destination, string(key.Mode),
		est.DurationText, est.DurationSeconds, est.DistanceText, est.DistanceMeters,
		s.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert travel cache %s -> %s: %w", key.Origin, key.Destination, err)
	}

	return nil
}

func (s *SQLCache) GetCoordinates(ctx context.Context, address string) (_ domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.Get")(&err)

	if s.DB == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: db is nil")
	}

	var c domain.Coordinates
	err = s.DB.QueryRowContext(ctx, s.q.getCoords, address).Scan(&c.Lat, &c.Lng)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return c, true, nil
}

func (s *SQLCache) PutCoordinates(ctx context.Context, address string, c domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	if strings.TrimSpace(address) == "" {
		return errors.New("insert geocode cache: empty address key")
	}

	if _, err := s.DB.ExecContext(ctx, s.q.putCoords, address, c.Lat, c.Lng, s.now().Unix()); err != nil {
		return fmt.Errorf("insert geocode cache address=%q: %w", address, err)
	}

	return nil
}

// Prune deletes travel and geocode rows written before olderThan and reports
// how many rows were removed.
func (s *SQLCache) Prune(ctx context.Context, olderThan time.Time) (_ int64, err error) {
	defer obs.Time(ctx, "cache.Prune")(&err)

	if s.DB == nil {
		return 0, errors.New("prune cache: db is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("prune cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var total int64
	for _, q := range []string{s.q.pruneTravel, s.q.pruneCoords} {
		res, err := tx.ExecContext(ctx, q, olderThan.Unix())
		if err != nil {
			return 0, fmt.Errorf("prune cache: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("prune cache: rows affected: %w", err)
		}
		total += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("prune cache commit: %w", err)
	}

	return total, nil
}
