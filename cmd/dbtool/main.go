package main

import (
	"context"
	"database/sql"
	"flag"
	"itinerary-planner-service/internal/adapters/cache"
	"itinerary-planner-service/internal/config"
	"itinerary-planner-service/internal/platform/db"
	"itinerary-planner-service/internal/platform/jobs"
	"log"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// dbtool prepares the Postgres travel cache and prunes stale rows.
//
//	dbtool init    create cache tables
//	dbtool prune   delete rows older than CACHE_TTL
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	flag.Parse()
	cmd := flag.Arg(0)
	if cmd == "" {
		cmd = "init"
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	switch cmd {
	case "init":
		initSchema(ctx, conn)
	case "prune":
		ttl, err := time.ParseDuration(config.Get("CACHE_TTL", "720h"))
		if err != nil {
			log.Fatalf("CACHE_TTL: %v", err)
		}
		initSchema(ctx, conn)
		prune(ctx, conn, ttl)
	default:
		log.Fatalf("unknown command %q (want init or prune)", cmd)
	}
}

func initSchema(ctx context.Context, conn *sql.DB) {
	log.Println("Initializing cache schema...")
	if err := cache.InitSchema(ctx, conn, cache.Postgres); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")
}

func prune(ctx context.Context, conn *sql.DB, ttl time.Duration) {
	sc, err := cache.NewSQLCache(conn, cache.Postgres)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("Pruning cache rows older than %s...", ttl)
	n, err := (&jobs.CachePruner{Pruner: sc, TTL: ttl}).Run(ctx)
	if err != nil {
		log.Fatalf("prune failed: %v", err)
	}
	log.Printf("Prune complete. removed=%d", n)
}
