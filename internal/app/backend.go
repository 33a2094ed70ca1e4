package app

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/yanizio/backend-api/internal/config"
	"github.com/yanizio/backend-api/internal/secrets"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewAccessor builds the configured secret backend.  A construction failure
// is logged and yields a nil Accessor, never an error, so startup proceeds
// and each secret is recorded as "client unavailable".  The returned closer
// is always non-nil.
func NewAccessor(ctx context.Context, cfg config.Secrets, log *zap.SugaredLogger) (secrets.Accessor, io.Closer) {
	switch cfg.Backend {
	case config.BackendGCP:
		acc, err := secrets.NewGCPAccessor(ctx)
		if err != nil {
			log.Errorw("failed to initialize secret manager", "backend", cfg.Backend, "err", err)
			return nil, nopCloser{}
		}
		log.Infow("secret manager client initialized", "backend", cfg.Backend)
		return acc, acc

	case config.BackendVault:
		acc, err := secrets.NewVaultAccessor(cfg.VaultMount, cfg.VaultField)
		if err != nil {
			log.Errorw("failed to initialize secret manager", "backend", cfg.Backend, "err", err)
			return nil, nopCloser{}
		}
		log.Infow("secret manager client initialized", "backend", cfg.Backend, "mount", cfg.VaultMount)
		return acc, nopCloser{}

	case config.BackendEnv:
		log.Infow("secret manager client initialized", "backend", cfg.Backend, "prefix", cfg.EnvPrefix)
		return secrets.NewEnvAccessor(cfg.EnvPrefix), nopCloser{}

	default:
		log.Warnw("secret backend disabled", "backend", cfg.Backend)
		return nil, nopCloser{}
	}
}
