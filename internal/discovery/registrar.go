// Package discovery registers a running service with a service registry.
package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/relatosdepapel/bookstore-backend/internal/config"
)

// Instance describes one running process of a service.
type Instance struct {
	App  string
	Host string
	Port int
}

// ID is the registry-wide identity of the instance.
func (i Instance) ID() string {
	return fmt.Sprintf("%s:%s:%d", i.Host, strings.ToLower(i.App), i.Port)
}

// BaseURL is the address other services use to reach the instance.
func (i Instance) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", i.Host, i.Port)
}

// Registrar announces an instance to a registry and withdraws it on shutdown.
type Registrar interface {
	Register(ctx context.Context, inst Instance) error
	Deregister(ctx context.Context) error
}

// Noop is the Registrar used when discovery is disabled.
type Noop struct{}

func (Noop) Register(context.Context, Instance) error { return nil }
func (Noop) Deregister(context.Context) error         { return nil }

// New returns the Registrar selected by cfg.
func New(cfg config.DiscoveryConfig, logger *slog.Logger) Registrar {
	if !cfg.Enabled {
		return Noop{}
	}
	client := &http.Client{Timeout: cfg.RequestTimeout}
	return NewEureka(cfg, client, clockwork.NewRealClock(), logger)
}
