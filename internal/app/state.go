// internal/app/state.go
//
// Startup state shared by every request handler.
//
// Context
// -------
// `Init` is the single initialization step.  It resolves the environment,
// performs the one secret-loading pass, and returns a `*State` that is
// never mutated afterwards.  cmd/web calls it before the listener opens,
// so no handler can observe a half-initialized process and no locking is
// needed on the request path.
//
// Notes
// -----
//   - Handlers receive *State by injection; there are no package globals.
//   - Oxford commas, two spaces after periods.
package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/yanizio/backend-api/internal/config"
	"github.com/yanizio/backend-api/internal/environment"
	"github.com/yanizio/backend-api/internal/secrets"
)

// Service identity reported by the status endpoints.
const (
	ServiceName = "backend-api"
	Version     = "2.0.0"
)

// State is immutable after Init returns.
type State struct {
	Env      environment.Config
	Secrets  *secrets.Cache
	LogLevel string // as configured, echoed by /api/env-info
	Started  time.Time
}

// Init resolves the environment and loads secrets through acc.  acc may be
// nil when no backend client is available; every secret is then recorded
// as absent.
func Init(ctx context.Context, cfg *config.Config, acc secrets.Accessor, log *zap.SugaredLogger) *State {
	env := environment.Resolve(cfg.Environment, cfg.ProjectID)

	log.Infow("environment resolved",
		"environment", env.Name,
		"tier", env.Tier.String(),
		"project_id", env.ProjectID,
		"debug", env.Debug,
	)

	cache := secrets.Load(ctx, acc, env.ProjectID, secrets.Required, secrets.Options{
		Timeout: cfg.Secrets.Timeout,
		Logger:  log,
	})

	return &State{
		Env:      env,
		Secrets:  cache,
		LogLevel: cfg.Log.Level,
		Started:  time.Now().UTC(),
	}
}
