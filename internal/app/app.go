package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/relatosdepapel/bookstore-backend/internal/adapter/postgres"
	"github.com/relatosdepapel/bookstore-backend/internal/config"
	"github.com/relatosdepapel/bookstore-backend/internal/discovery"
	"github.com/relatosdepapel/bookstore-backend/migrations"
)

// Service names one of the deployable HTTP services.
type Service string

const (
	ServiceCatalogue Service = "catalogue"
	ServicePayments  Service = "payments"
)

// ParseService resolves a service name given on the command line.
func ParseService(s string) (Service, error) {
	switch svc := Service(s); svc {
	case ServiceCatalogue, ServicePayments:
		return svc, nil
	default:
		return "", fmt.Errorf("unknown service %q (want %s or %s)", s, ServiceCatalogue, ServicePayments)
	}
}

// Migrations returns the migration set owned by the service.
func (s Service) Migrations() migrations.Set {
	if s == ServicePayments {
		return migrations.Payments
	}
	return migrations.Catalogue
}

// Run starts the service and blocks until ctx is cancelled or SIGINT/SIGTERM
// arrives, then drains in-flight requests within Server.ShutdownTimeout.
func Run(ctx context.Context, svc Service) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log).With(slog.String("service", string(svc)))

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := Migrate(ctx, pool, svc.Migrations(), MigrateUp, logger); err != nil {
			return err
		}
	}

	handler, cleanup, err := NewHandler(svc, cfg, pool, clockwork.NewRealClock(), logger)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	registrar := discovery.New(cfg.Discovery, logger)
	inst := discovery.Instance{
		App:  string(svc),
		Host: cfg.Discovery.InstanceHost,
		Port: cfg.Server.Port,
	}
	if err := registrar.Register(ctx, inst); err != nil {
		logger.Warn("service registration failed", slog.String("error", err.Error()))
	}

	select {
	case err, ok := <-serveErr:
		if ok {
			_ = registrar.Deregister(context.Background())
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := registrar.Deregister(shutdownCtx); err != nil {
		logger.Warn("service deregistration failed", slog.String("error", err.Error()))
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	logger.Info("application stopped")
	return nil
}
