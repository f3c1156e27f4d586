package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/hra-tradeshow-backend/api/responses"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/hra-tradeshow-backend/pkg/errors"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/logger"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/types"
)

const readinessTimeout = 2 * time.Second

// Pinger is a dependency checked by the readiness probe.
type Pinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-HRA-Env", cfg.App.Env)
		responses.WriteSuccess(w, types.HealthStatus{Status: "live"})
	}
}

// HealthReady pings every configured dependency. Unconfigured ones are not passed in.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-HRA-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := make(map[string]string, len(deps))
		var failed error
		for name, dep := range deps {
			if err := dep.Ping(ctx); err != nil {
				checks[name] = "down"
				if failed == nil {
					failed = pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable").
						WithDetails(map[string]any{"dependency": name})
				}
				continue
			}
			checks[name] = "ok"
		}
		if failed != nil {
			responses.WriteError(r.Context(), logg, w, failed)
			return
		}
		responses.WriteSuccess(w, types.HealthStatus{Status: "ready", Checks: checks})
	}
}
