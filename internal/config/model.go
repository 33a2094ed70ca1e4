// internal/config/model.go
//
// Typed configuration model.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from its overlay layers:
//
//   - built-in defaults,
//   - optional `conf/.env` and `conf/global.yaml`,
//   - the well-known deployment variables (`ENVIRONMENT`, `PORT`, …),
//   - `BACKEND_`-prefixed overrides, highest precedence.
//
// Notes
// -----
//   - Struct tags use `koanf:"…"`, not `yaml:"…"`.
//   - The `Paths` block is filled at runtime; YAML must not try to set it.
//   - Oxford commas, two spaces after periods.  No em-dash.
package config

import (
	"strconv"
	"time"
)

// Secret backends understood by cmd/web.
const (
	BackendGCP   = "gcp"
	BackendVault = "vault"
	BackendEnv   = "env"
	BackendNone  = "none"
)

// HTTP holds web-server tunables.
type HTTP struct {
	Port        int      `koanf:"port"         validate:"required,min=1,max=65535"`
	ForceHTTPS  bool     `koanf:"force_https"`
	CORSOrigins []string `koanf:"cors_origins" validate:"dive,required"`
}

// Log controls the zap sinks.  Level keeps the operator's spelling
// (`INFO`, `WARNING`, …) because /api/env-info echoes it back.
type Log struct {
	Level string `koanf:"level"`
	Dir   string `koanf:"dir"` // empty disables the rotating file sink
}

// Secrets selects and tunes the startup secret backend.
type Secrets struct {
	Backend    string        `koanf:"backend"     validate:"oneof=gcp vault env none"`
	Timeout    time.Duration `koanf:"timeout"     validate:"gte=0"`
	VaultMount string        `koanf:"vault_mount" validate:"required_if=Backend vault"`
	VaultField string        `koanf:"vault_field"`
	EnvPrefix  string        `koanf:"env_prefix"`
}

// Paths is resolved at runtime.
type Paths struct {
	Root string // BACKEND_ROOT or discovered parent
}

// Config is the immutable aggregate returned by Load().
type Config struct {
	Environment string `koanf:"environment"`
	ProjectID   string `koanf:"project_id"`

	// FallbackProjectID carries GOOGLE_CLOUD_PROJECT; it only applies when
	// GCP_PROJECT_ID is unset.
	FallbackProjectID string `koanf:"google_cloud_project"`

	GeoIPDB string `koanf:"geoip_db" validate:"omitempty,file"`

	HTTP    HTTP    `koanf:"http"`
	Log     Log     `koanf:"log"`
	Secrets Secrets `koanf:"secrets"`
	Paths   Paths   `koanf:"-"`
}

// ListenAddr is the host:port the server binds.
func (c *Config) ListenAddr() string {
	return ":" + strconv.Itoa(c.HTTP.Port)
}
