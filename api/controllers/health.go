package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/atelieamado/backoffice-api/api/responses"
	"github.com/atelieamado/backoffice-api/pkg/config"
	"github.com/atelieamado/backoffice-api/pkg/logger"
)

// Pinger is the dependency health-check surface.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Atelie-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports per-dependency status. The endpoint answers 200 with
// a degraded payload rather than failing so load balancers can distinguish
// "down" from "up with a struggling dependency".
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP, redisP Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{}
		ready := true

		check := func(name string, p Pinger) {
			if p == nil {
				checks[name] = "skipped"
				return
			}
			if err := p.Ping(ctx); err != nil {
				checks[name] = "down"
				ready = false
				if logg != nil {
					logg.Error(logg.WithField(ctx, "dependency", name), "readiness check failed", err)
				}
				return
			}
			checks[name] = "up"
		}

		check("database", dbP)
		check("redis", redisP)

		status := "ready"
		if !ready {
			status = "degraded"
		}

		w.Header().Set("X-Atelie-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]any{
			"status": status,
			"checks": checks,
		})
	}
}
