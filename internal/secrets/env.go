package secrets

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// EnvAccessor resolves secrets from environment variables, for local runs
// without a secret store.  db-password is read from <Prefix>DB_PASSWORD.
type EnvAccessor struct {
	Prefix string
}

// NewEnvAccessor returns an accessor using prefix (default "SECRET_").
func NewEnvAccessor(prefix string) *EnvAccessor {
	if prefix == "" {
		prefix = "SECRET_"
	}
	return &EnvAccessor{Prefix: prefix}
}

// Access implements Accessor.  The project id is ignored.
func (a *EnvAccessor) Access(_ context.Context, ref Ref) ([]byte, error) {
	key := a.Prefix + envKey(ref.Secret)
	val, ok := os.LookupEnv(key)
	if !ok {
		return nil, fmt.Errorf("%w: environment variable %q not set", ErrNotFound, key)
	}
	return []byte(val), nil
}

func envKey(n Name) string {
	return strings.ToUpper(strings.ReplaceAll(string(n), "-", "_"))
}
