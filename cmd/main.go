package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"CashflowSuite/internal/appmanager"
	"CashflowSuite/internal/correlation"
)

// initPool connects to Postgres when DB_* env vars are configured. The DB
// only holds master reference data; the pipeline itself is stateless.
func initPool(ctx context.Context) (*pgxpool.Pool, error) {
	host := os.Getenv("DB_HOST")
	if host == "" {
		return nil, nil
	}
	connStr := fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), host,
		os.Getenv("DB_PORT"), os.Getenv("DB_NAME"),
	)
	return pgxpool.New(ctx, connStr)
}

// loadCorrelation picks the correlation source: Postgres master table when
// a pool is configured, a YAML file when CORRELATION_FILE is set, the
// compiled-in defaults otherwise. Loaded once; immutable afterwards.
func loadCorrelation(ctx context.Context, pool *pgxpool.Pool) (*correlation.Resolver, error) {
	if pool != nil {
		entries, err := correlation.LoadDB(ctx, pool)
		if err != nil {
			return nil, err
		}
		return correlation.NewResolver(entries), nil
	}
	if path := os.Getenv("CORRELATION_FILE"); path != "" {
		entries, err := correlation.LoadFile(path)
		if err != nil {
			return nil, err
		}
		return correlation.NewResolver(entries), nil
	}
	return correlation.NewResolver(correlation.DefaultEntries), nil
}

func main() {
	// Load .env for local dev
	_ = godotenv.Load(".env")

	ctx := context.Background()
	pool, err := initPool(ctx)
	if err != nil {
		log.Fatal("failed to connect to DB:", err)
	}
	if pool != nil {
		appmanager.SetPgxPool(pool)
		defer pool.Close()
	}

	resolver, err := loadCorrelation(ctx, pool)
	if err != nil {
		log.Fatal("failed to load correlation table:", err)
	}
	log.Printf("correlation table loaded: %d known spellings", resolver.Len())
	appmanager.SetResolver(resolver)

	manager := appmanager.NewAppManager()

	servicesPath := os.Getenv("SERVICES_FILE")
	if servicesPath == "" {
		servicesPath = "services.yaml"
	}
	servicesCfg, err := appmanager.LoadServiceSequence(servicesPath)
	if err != nil {
		log.Fatal("failed to load service sequence:", err)
	}
	manager.AutoRegisterServices(servicesCfg)

	if err := manager.StartAll(); err != nil {
		log.Fatal("failed to start:", err)
	}

	// Graceful shutdown handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	if err := manager.StopAll(); err != nil {
		log.Fatal("failed to stop:", err)
	}
}
