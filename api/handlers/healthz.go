package handlers

import (
	"context"
	"net/http"

	"github.com/vasstra/vasstra-storefront/api/responses"
	"github.com/vasstra/vasstra-storefront/pkg/config"
	pkgerrors "github.com/vasstra/vasstra-storefront/pkg/errors"
	"github.com/vasstra/vasstra-storefront/pkg/logger"
)

// Pinger is any dependency the health check probes. Only the backends
// the configured kv layer actually uses are registered.
type Pinger interface {
	Ping(ctx context.Context) error
}

func Healthz(cfg *config.Config, logg *logger.Logger, checks map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithFields(ctx, map[string]any{
				"env":  cfg.App.Env,
				"path": r.URL.Path,
			})
			logg.Info(ctx, "health.check")
		}

		w.Header().Set("X-Vasstra-Env", cfg.App.Env)

		for name, check := range checks {
			if check == nil {
				continue
			}
			if err := check.Ping(ctx); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}
