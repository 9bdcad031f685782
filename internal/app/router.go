package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jonboulle/clockwork"

	postgres "github.com/relatosdepapel/bookstore-backend/internal/adapter/postgres"
	bookrepo "github.com/relatosdepapel/bookstore-backend/internal/adapter/postgres/book"
	paymentrepo "github.com/relatosdepapel/bookstore-backend/internal/adapter/postgres/payment"
	"github.com/relatosdepapel/bookstore-backend/internal/config"
	"github.com/relatosdepapel/bookstore-backend/internal/service/book"
	"github.com/relatosdepapel/bookstore-backend/internal/service/payment"
	"github.com/relatosdepapel/bookstore-backend/internal/transport/middleware"
	"github.com/relatosdepapel/bookstore-backend/internal/transport/rest"
)

// Database is what the HTTP stack needs from the connection pool.
// *pgxpool.Pool satisfies it.
type Database interface {
	postgres.Querier
	postgres.Beginner
	Ping(ctx context.Context) error
}

// NewHandler builds the routed and middleware-wrapped handler of svc.
// The returned cleanup stops background goroutines started for it.
func NewHandler(svc Service, cfg *config.Config, db Database, clock clockwork.Clock, logger *slog.Logger) (http.Handler, func(), error) {
	mux := http.NewServeMux()
	tx := postgres.NewTxManager(db)

	switch svc {
	case ServiceCatalogue:
		books := book.NewService(logger, bookrepo.New(db), tx)
		rest.NewBookHandler(books, logger).Register(mux)
	case ServicePayments:
		payments := payment.NewService(logger, paymentrepo.New(db), tx, clock)
		rest.NewPaymentHandler(payments, logger).Register(mux)
	default:
		return nil, nil, fmt.Errorf("unknown service %q", svc)
	}

	rest.NewHealthHandler(db, string(svc), BuildVersion()).Register(mux)

	cleanup := func() {}
	var rateLimit middleware.Middleware
	if cfg.RateLimit.Enabled {
		rl := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst,
			cfg.RateLimit.CleanupInterval, cfg.RateLimit.IdleTTL, clock)
		rateLimit = rl.Middleware()
		cleanup = rl.Stop
	}

	chain := middleware.Chain(
		middleware.RequestID(),
		middleware.ClientIP(cfg.Server.TrustProxy),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		rateLimit,
		middleware.MaxBody(cfg.Server.MaxBodyBytes),
	)

	return chain(mux), cleanup, nil
}
