// Command migrate applies, rolls back or reports the schema migrations of one
// service against the database named by DATABASE_DSN.
//
// Usage:
//
//	migrate -service catalogue -cmd up
//	migrate -service payments -cmd status
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/relatosdepapel/bookstore-backend/internal/adapter/postgres"
	"github.com/relatosdepapel/bookstore-backend/internal/app"
	"github.com/relatosdepapel/bookstore-backend/internal/config"
)

func main() {
	var (
		service = flag.String("service", string(app.ServiceCatalogue), "Service whose migrations to run: catalogue, payments")
		command = flag.String("cmd", app.MigrateUp, "Migration command: up, down, status")
	)
	flag.Parse()

	svc, err := app.ParseService(*service)
	if err != nil {
		log.Fatal(err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log).With(slog.String("service", string(svc)))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if err := app.Migrate(ctx, pool, svc.Migrations(), *command, logger); err != nil {
		logger.Error("migrate failed",
			slog.String("command", *command),
			slog.String("error", err.Error()),
		)
		pool.Close()
		os.Exit(1)
	}
}
