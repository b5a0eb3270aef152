package controllers

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/multierr"

	"github.com/eight22lax/stringshop-backend/api/responses"
	"github.com/eight22lax/stringshop-backend/pkg/config"
	"github.com/eight22lax/stringshop-backend/pkg/db"
	pkgerrors "github.com/eight22lax/stringshop-backend/pkg/errors"
	"github.com/eight22lax/stringshop-backend/pkg/logger"
	"github.com/eight22lax/stringshop-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-StringShop-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady probes the database and redis within the configured timeout.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-StringShop-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), cfg.Health.ProbeTimeout)
		defer cancel()

		var probeErr error
		if dbP != nil {
			if err := dbP.Ping(ctx); err != nil {
				probeErr = multierr.Append(probeErr, fmt.Errorf("db: %w", err))
			}
		}
		if redisP != nil {
			if err := redisP.Ping(ctx); err != nil {
				probeErr = multierr.Append(probeErr, fmt.Errorf("redis: %w", err))
			}
		}

		if probeErr != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, probeErr, "readiness probe failed"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
