// internal/config/loader.go
//
// Configuration loader.
//
/*
Context
--------
`Load()` builds one immutable `Config` from five layers (highest precedence
last):

  1. Built-in defaults (`environment=development`, `http.port=8080`, …).
  2. Optional `<root>/conf/.env`, exported into the process environment.
  3. Optional `<root>/conf/global.yaml`.
  4. The well-known deployment variables the platform injects:
     `ENVIRONMENT`, `GCP_PROJECT_ID`, `GOOGLE_CLOUD_PROJECT`, `PORT`,
     `LOG_LEVEL`, `SECRETS_BACKEND`, `VAULT_MOUNT`, `GEOIP_DB`.
  5. Variables prefixed `BACKEND_`, where `__` maps to "."
     (e.g., `BACKEND_HTTP__FORCE_HTTPS → http.force_https`).

After merging, the tree is unmarshalled into typed structs, the project id
fallback is applied, and the result is validated.  The caller owns the
returned pointer; nothing is cached here.

Instrumentation
---------------
  • DEBUG spans: root discovery, YAML read.
  • ERROR spans: YAML parse, env overlay, unmarshal, validation failures.
  • INFO span: final "config loaded" with key highlights.
  • Logs use the global *sugared* logger (`zap.S()`) so early boot issues
    surface before the configured logger is installed.

Notes
-----
  • Blank deployment variables are ignored, except `ENVIRONMENT`: a set
    but blank name is kept and resolves to the unknown tier.  Only an
    unset `ENVIRONMENT` falls back to `development`.
  • Oxford commas, two spaces after periods.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

const envPrefix = "BACKEND_"

/*──────────────────────────── defaults ─────────────────────────────────────*/

var defaults = map[string]any{
	"environment":         "development",
	"http.port":           8080,
	"http.force_https":    false,
	"http.cors_origins":   []string{"*"},
	"log.level":           "INFO",
	"secrets.backend":     BackendGCP,
	"secrets.timeout":     "10s",
	"secrets.vault_mount": "secret",
	"secrets.vault_field": "value",
	"secrets.env_prefix":  "SECRET_",
}

// wellKnown maps platform variables to config keys.
var wellKnown = map[string]string{
	"ENVIRONMENT":          "environment",
	"GCP_PROJECT_ID":       "project_id",
	"GOOGLE_CLOUD_PROJECT": "google_cloud_project",
	"PORT":                 "http.port",
	"LOG_LEVEL":            "log.level",
	"SECRETS_BACKEND":      "secrets.backend",
	"VAULT_MOUNT":          "secrets.vault_mount",
	"GEOIP_DB":             "geoip_db",
}

// listKeys are split on commas when they arrive as a single env string.
var listKeys = map[string]bool{
	"http.cors_origins": true,
}

/*──────────────────────────── root discovery ───────────────────────────────*/

// rootDir resolves BACKEND_ROOT or climbs directories until a conf/
// directory is found.  Falls back to the working directory.
func rootDir() string {
	if r := os.Getenv(envPrefix + "ROOT"); r != "" {
		return r
	}

	wd, _ := os.Getwd()
	dir := wd
	for {
		if fi, err := os.Stat(filepath.Join(dir, "conf")); err == nil && fi.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached filesystem root
			break
		}
		dir = parent
	}
	return wd
}

/*─────────────────────────────── loader ───────────────────────────────────*/

// Load resolves the root directory and loads from it.
func Load() (*Config, error) {
	return LoadFrom(rootDir())
}

// LoadFrom builds, validates, and returns the Config rooted at root.
func LoadFrom(root string) (*Config, error) {
	zap.S().Debugw("config root resolved", "root", root)

	// .env (optional, never overrides variables already set)
	_ = godotenv.Load(filepath.Join(root, "conf", ".env"))

	k := koanf.New(".")
	for key, val := range defaults {
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("config default %s: %w", key, err)
		}
	}

	yamlPath := filepath.Join(root, "conf", "global.yaml")
	if _, err := os.Stat(yamlPath); err == nil {
		if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
			zap.S().Errorw("config yaml load failed", "file", yamlPath, "err", err)
			return nil, fmt.Errorf("config yaml %s: %w", yamlPath, err)
		}
		zap.S().Debugw("config yaml loaded", "file", yamlPath)
	}

	if err := k.Load(env.ProviderWithValue("", ".", platformVar), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, fmt.Errorf("config env: %w", err)
	}

	// BACKEND_HTTP__FORCE_HTTPS → http.force_https
	if err := k.Load(env.ProviderWithValue(envPrefix, ".", prefixedVar), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "prefix", envPrefix, "err", err)
		return nil, fmt.Errorf("config env %s: %w", envPrefix, err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, fmt.Errorf("config unmarshal: %w", err)
	}

	if cfg.ProjectID == "" {
		cfg.ProjectID = cfg.FallbackProjectID
	}
	cfg.Secrets.Backend = strings.ToLower(cfg.Secrets.Backend)
	cfg.Paths.Root = root

	if err := validateStruct(&cfg); err != nil {
		zap.S().Errorw("config validation failed", "err", err)
		return nil, err
	}

	zap.S().Infow("config loaded",
		"environment", cfg.Environment,
		"project_id", cfg.ProjectID,
		"listen_addr", cfg.ListenAddr(),
		"secrets_backend", cfg.Secrets.Backend,
		"root", cfg.Paths.Root,
	)
	return &cfg, nil
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

func platformVar(key, value string) (string, any) {
	k, ok := wellKnown[key]
	if !ok {
		return "", nil
	}
	// ENVIRONMENT= must not inherit the development default (debug on).
	if k != "environment" && strings.TrimSpace(value) == "" {
		return "", nil
	}
	return k, value
}

func prefixedVar(key, value string) (string, any) {
	k := strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(key, envPrefix), "__", "."))
	if k == "root" {
		return "", nil
	}
	if listKeys[k] {
		return k, splitList(value)
	}
	return k, value
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
