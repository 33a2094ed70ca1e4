// internal/secrets/vault.go
//
// HashiCorp Vault backend.
//
// Context
// -------
// Some deployments keep secrets in Vault instead of Secret Manager.  The
// project id becomes the first path segment under a KV-v2 mount, so
//
//	projects/acme/secrets/db-password/versions/latest
//
// is read from `<mount>/acme/db-password`, field `<field>` (default
// "value").  KV-v2 reads return the newest version, matching "latest".
//
// Environment expectations
// ------------------------
//   - VAULT_ADDR   – scheme and host of the Vault server.
//   - VAULT_TOKEN  – token (falls back to ~/.vault-token).
//
// Notes
// -----
//   - One read per secret at startup, so there is no token renewal loop.
//   - Oxford commas, two spaces after periods.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	vault "github.com/hashicorp/vault/api"
)

// VaultAccessor is safe for concurrent use.  Zero value is invalid.
type VaultAccessor struct {
	api   *vault.Client
	mount string
	field string
}

// NewVaultAccessor builds a client from the VAULT_* environment.
func NewVaultAccessor(mount, field string) (*VaultAccessor, error) {
	if mount == "" {
		return nil, errors.New("vault mount must be non-empty")
	}
	if field == "" {
		field = "value"
	}

	cfg := vault.DefaultConfig()
	if err := cfg.ReadEnvironment(); err != nil {
		return nil, fmt.Errorf("vault env cfg: %w", err)
	}

	apiCli, err := vault.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault api: %w", err)
	}

	if tok := os.Getenv("VAULT_TOKEN"); tok != "" {
		apiCli.SetToken(tok)
	}

	return newVaultAccessor(apiCli, mount, field), nil
}

func newVaultAccessor(c *vault.Client, mount, field string) *VaultAccessor {
	return &VaultAccessor{
		api:   c,
		mount: strings.Trim(mount, "/"),
		field: field,
	}
}

// Access implements Accessor.
func (a *VaultAccessor) Access(ctx context.Context, ref Ref) ([]byte, error) {
	rel := ref.Project + "/" + string(ref.Secret)

	sec, err := a.api.KVv2(a.mount).Get(ctx, rel)
	if err != nil {
		if errors.Is(err, vault.ErrSecretNotFound) {
			return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, a.mount, rel)
		}
		return nil, fmt.Errorf("vault get %s/%s: %w", a.mount, rel, err)
	}

	raw, ok := sec.Data[a.field]
	if !ok {
		return nil, fmt.Errorf("%w: key %q not in %s/%s", ErrNotFound, a.field, a.mount, rel)
	}

	sval, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("value at %s/%s#%s is not a string", a.mount, rel, a.field)
	}
	return []byte(sval), nil
}
