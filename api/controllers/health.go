package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

const envHeader = "X-Storefront-Env"

// Pinger is a storage backend that can report its health.
type Pinger interface {
	Ping(ctx context.Context) error
	Name() string
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, storage Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		if storage != nil {
			if err := storage.Ping(r.Context()); err != nil {
				ctx := r.Context()
				if logg != nil {
					ctx = logg.WithField(ctx, "storage_backend", storage.Name())
				}
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "storage ping failed"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
