package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront/internal/auth"
	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/pkg/catalogapi"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/angelmondragon/storefront/pkg/persistence"
)

// App holds the process-wide containers. One App lives for the lifetime of a binary.
type App struct {
	Storage persistence.Backend
	Catalog *catalog.Service
	Cart    *cart.Store
	Auth    auth.Service

	closers []func() error
}

// Options tweak how an App is assembled.
type Options struct {
	// Registerer receives the catalog and persistence metrics. Nil disables metrics.
	Registerer prometheus.Registerer
	// Storage overrides the backend chosen from config.
	Storage persistence.Backend
	// Remote overrides the catalog API client.
	Remote interface {
		catalog.Remote
		auth.Remote
	}
}

// New opens storage, rehydrates cart and session state and wires the services.
func New(ctx context.Context, cfg *config.Config, logg *logger.Logger, opts Options) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}
	if logg == nil {
		logg = logger.Nop()
	}

	storage := opts.Storage
	if storage == nil {
		opened, err := persistence.Open(ctx, cfg, logg)
		if err != nil {
			return nil, fmt.Errorf("opening %s storage: %w", cfg.Storage.NormalizedDriver(), err)
		}
		storage = opened
	}
	a := &App{Storage: storage, closers: []func() error{storage.Close}}

	remote := opts.Remote
	if remote == nil {
		remote = catalogapi.NewClient(
			cfg.Catalog.BaseURL,
			catalogapi.WithTimeout(cfg.Catalog.Timeout),
			catalogapi.WithMetrics(metrics.NewCatalogAPIMetrics(opts.Registerer)),
		)
	}

	adapter := persistence.NewAdapter(storage, logg, metrics.NewPersistenceMetrics(opts.Registerer))

	var err error
	if a.Catalog, err = catalog.NewService(catalog.NewStore(), remote, logg); err != nil {
		return nil, multierr.Append(err, a.Close())
	}
	if a.Cart, err = cart.NewStore(ctx, adapter, logg); err != nil {
		return nil, multierr.Append(err, a.Close())
	}
	if a.Auth, err = auth.NewService(ctx, remote, adapter, logg); err != nil {
		return nil, multierr.Append(err, a.Close())
	}
	return a, nil
}

// Close releases storage and anything else the App opened.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	var errs error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = multierr.Append(errs, a.closers[i]())
	}
	a.closers = nil
	return errs
}
