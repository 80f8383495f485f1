package cache

// Dialect selects the SQL flavour a cache speaks.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

type queries struct {
	getTravel   string
	putTravel   string
	getCoords   string
	putCoords   string
	pruneTravel string
	pruneCoords string
	schema      []string
}

var postgresQueries = queries{
	getTravel: `
	SELECT duration_text, duration_seconds, distance_text, distance_meters
	FROM travel_cache
	WHERE origin = $1 AND destination = $2 AND mode = $3;
	`,
	putTravel: `
	INSERT INTO travel_cache (origin, destination, mode, duration_text, duration_seconds, distance_text, distance_meters, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (origin, destination, mode) DO UPDATE
	SET duration_text = EXCLUDED.duration_text,
		duration_seconds = EXCLUDED.duration_seconds,
		distance_text = EXCLUDED.distance_text,
		distance_meters = EXCLUDED.distance_meters,
		created_at = EXCLUDED.created_at;
	`,
	getCoords: `
	SELECT lat, lng
	FROM geocode_cache
	WHERE address = $1;
	`,
	putCoords: `
	INSERT INTO geocode_cache (address, lat, lng, created_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (address) DO UPDATE
	SET lat = EXCLUDED.lat,
		lng = EXCLUDED.lng,
		created_at = EXCLUDED.created_at;
	`,
	pruneTravel: `DELETE FROM travel_cache WHERE created_at < $1;`,
	pruneCoords: `DELETE FROM geocode_cache WHERE created_at < $1;`,
	schema: []string{
		`
	CREATE TABLE IF NOT EXISTS travel_cache (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		mode TEXT NOT NULL,
		duration_text TEXT NOT NULL,
		duration_seconds INTEGER NOT NULL,
		distance_text TEXT NOT NULL,
		distance_meters INTEGER NOT NULL,
		created_at BIGINT NOT NULL,
		PRIMARY KEY (origin, destination, mode)
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		created_at BIGINT NOT NULL
	);
	`,
		`CREATE INDEX IF NOT EXISTS idx_travel_cache_created_at ON travel_cache(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_geocode_cache_created_at ON geocode_cache(created_at);`,
	},
}

var sqliteQueries = queries{
	getTravel: `
	SELECT duration_text, duration_seconds, distance_text, distance_meters
	FROM travel_cache
	WHERE origin = ? AND destination = ? AND mode = ?;
	`,
	putTravel: `
	INSERT OR REPLACE INTO travel_cache (origin, destination, mode, duration_text, duration_seconds, distance_text, distance_meters, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`,
	getCoords: `
	SELECT lat, lng
	FROM geocode_cache
	WHERE address = ?;
	`,
	putCoords: `
	INSERT OR REPLACE INTO geocode_cache (address, lat, lng, created_at)
	VALUES (?, ?, ?, ?);
	`,
	pruneTravel: `DELETE FROM travel_cache WHERE created_at < ?;`,
	pruneCoords: `DELETE FROM geocode_cache WHERE created_at < ?;`,
	schema: []string{
		`
	CREATE TABLE IF NOT EXISTS travel_cache (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		mode TEXT NOT NULL,
		duration_text TEXT NOT NULL,
		duration_seconds INTEGER NOT NULL,
		distance_text TEXT NOT NULL,
		distance_meters INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		PRIMARY KEY (origin, destination, mode)
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lat REAL NOT NULL,
		lng REAL NOT NULL,
		created_at INTEGER NOT NULL
	);
	`,
		`CREATE INDEX IF NOT EXISTS idx_travel_cache_created_at ON travel_cache(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_geocode_cache_created_at ON geocode_cache(created_at);`,
	},
}

func (d Dialect) queries() (queries, bool) {
	switch d {
	case Postgres:
		return postgresQueries, true
	case SQLite:
		return sqliteQueries, true
	}
	return queries{}, false
}
