package secrets

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/yanizio/backend-api/internal/metrics"
)

// DefaultTimeout bounds each remote call when Options.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// Options tunes a load pass.
type Options struct {
	Timeout time.Duration      // per secret; <0 disables
	Logger  *zap.SugaredLogger // nil uses zap.S()
}

// Load fetches every name once, in order, and returns the resulting cache.
// acc may be nil when no backend client could be created.  Failures are
// isolated per secret and never returned; inspect Cache.Failure instead.
func Load(ctx context.Context, acc Accessor, projectID string, names []Name, opts Options) *Cache {
	log := opts.Logger
	if log == nil {
		log = zap.S()
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	log.Infow("initializing secrets", "count", len(names))

	c := &Cache{
		names:   append([]Name(nil), names...),
		entries: make(map[Name]entry, len(names)),
	}

	for _, n := range names {
		val, err := fetch(ctx, acc, projectID, n, timeout)
		metrics.SecretLoadTotal.WithLabelValues(string(n), reason(err)).Inc()

		if err != nil {
			log.Errorw("secret not loaded",
				"secret", n,
				"reason", reason(err),
				"err", err,
			)
			c.entries[n] = entry{err: err}
			continue
		}

		log.Infow("secret loaded", "secret", n)
		c.entries[n] = entry{value: val, ok: true}
	}

	c.loadedAt = time.Now().UTC()
	metrics.SecretsLoaded.Set(float64(c.LoadedCount()))
	return c
}

// fetch performs one guarded retrieval.
func fetch(ctx context.Context, acc Accessor, projectID string, n Name, timeout time.Duration) (string, error) {
	if acc == nil {
		return "", ErrClientUnavailable
	}
	if projectID == "" {
		return "", ErrProjectIDMissing
	}

	ref := Latest(projectID, n)

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	data, err := acc.Access(ctx, ref)
	if err != nil {
		return "", &AccessError{Ref: ref, Err: err}
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: %w", ref, ErrInvalidPayload)
	}
	return string(data), nil
}
