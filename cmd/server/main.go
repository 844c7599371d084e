package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"grid-conversion-service/internal/adapters/cache"
	"grid-conversion-service/internal/adapters/repositories"
	"grid-conversion-service/internal/api"
	"grid-conversion-service/internal/config"
	"grid-conversion-service/internal/platform/db"
	"grid-conversion-service/internal/platform/metrics"
	"grid-conversion-service/internal/ports"
	"grid-conversion-service/internal/services"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires concrete adapters (SQLite/Postgres, Redis) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := openRepository(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeRepo()

	var gridCache ports.GridCache
	if cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal(err)
		}
		defer client.Close()

		rc, err := cache.NewRedisGridCache(client, cfg.GridCacheTTL)
		if err != nil {
			log.Fatal(err)
		}
		gridCache = rc
		log.Printf("Grid cache enabled ttl=%s", cfg.GridCacheTTL)
	}

	catalog, err := services.NewGridCatalog(repo, gridCache)
	if err != nil {
		log.Fatal(err)
	}

	// Fail fast when the legacy /bng endpoint has nothing to serve.
	if _, err := catalog.Grid(ctx, cfg.DefaultGrid); err != nil {
		log.Fatalf("default grid %q: %v", cfg.DefaultGrid, err)
	}

	router := api.NewRouter(catalog, cfg.DefaultGrid, metrics.New())

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening addr=%s driver=%s default_grid=%s", srv.Addr, cfg.DBDriver, cfg.DefaultGrid)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	case <-ctx.Done():
		log.Println("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}
}

// openRepository selects the grid repository for the configured driver.
// SQLite databases are initialized and seeded on startup for local runs;
// Postgres is prepared with cmd/dbtool.
func openRepository(ctx context.Context, cfg config.Server) (ports.GridRepository, func(), error) {
	switch cfg.DBDriver {
	case config.DriverMemory:
		grids, err := repositories.LoadGridSeeds(cfg.SeedPath)
		if err != nil {
			return nil, nil, err
		}
		repo, err := repositories.NewMemoryGridRepository(grids...)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {}, nil

	case config.DriverPostgres:
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewSQLGridRepository(conn), closer(conn), nil

	default:
		conn, err := db.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		if err := initAndSeed(conn, cfg.SeedPath); err != nil {
			conn.Close()
			return nil, nil, err
		}
		return repositories.NewSqliteGridRepository(conn), closer(conn), nil
	}
}

func closer(conn *sql.DB) func() {
	return func() {
		if err := conn.Close(); err != nil {
			log.Printf("close db: %v", err)
		}
	}
}

func initAndSeed(conn *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(conn, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
