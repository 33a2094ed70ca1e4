package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yanizio/backend-api/internal/api"
	"github.com/yanizio/backend-api/internal/app"
	"github.com/yanizio/backend-api/internal/config"
	"github.com/yanizio/backend-api/internal/environment"
	"github.com/yanizio/backend-api/internal/logger"
	"github.com/yanizio/backend-api/internal/requestinfo"
	"github.com/yanizio/backend-api/internal/secrets"
	"github.com/yanizio/backend-api/internal/server"
)

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// bootstrap performs config load, logger start, and app.Init.  The closer
// releases the secret backend client.
func bootstrap(ctx context.Context) (*config.Config, *app.State, *zap.SugaredLogger, io.Closer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Options{
		Level: cfg.Log.Level,
		Dir:   cfg.Log.Dir,
		TTY:   runningInTTY(),
	})
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("start logger: %w", err)
	}
	log = log.With("environment", cfg.Environment)

	acc, closer := app.NewAccessor(ctx, cfg.Secrets, log)
	st := app.Init(ctx, cfg, acc, log)
	return cfg, st, log, closer, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, st, log, closer, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer log.Sync()
	defer closer.Close()

	var geo *requestinfo.Geo
	if cfg.GeoIPDB != "" {
		if geo, err = requestinfo.OpenGeo(cfg.GeoIPDB); err != nil {
			log.Warnw("geoip disabled", "path", cfg.GeoIPDB, "err", err)
		}
	}
	defer geo.Close()

	h := api.New(st, log)
	srv := server.New(cfg.ListenAddr(), h.Routes(api.Options{
		Geo:         geo,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		ForceHTTPS:  cfg.HTTP.ForceHTTPS,
		Metrics:     true,
	}))

	log.Infow("starting backend",
		"port", cfg.HTTP.Port,
		"debug", st.Env.Debug,
		"project_id", st.Env.ProjectID,
		"secrets", st.Secrets.String(),
	)
	return server.Run(ctx, srv, nil, log)
}

type envOutput struct {
	Environment string `json:"environment"`
	Tier        string `json:"tier"`
	ProjectID   string `json:"project_id"`
	Color       string `json:"environment_color"`
	Purpose     string `json:"purpose"`
	DebugMode   bool   `json:"debug_mode"`
	URL         string `json:"url"`
	ListenAddr  string `json:"listen_addr"`
}

func runEnv(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	env := environment.Resolve(cfg.Environment, cfg.ProjectID)
	return printJSON(cmd.OutOrStdout(), envOutput{
		Environment: env.Name,
		Tier:        env.Tier.String(),
		ProjectID:   env.ProjectID,
		Color:       env.Color,
		Purpose:     env.Purpose,
		DebugMode:   env.Debug,
		URL:         env.URL(),
		ListenAddr:  cfg.ListenAddr(),
	})
}

type secretOutput struct {
	secrets.Status
	Error string `json:"error,omitempty"`
}

func runSecrets(cmd *cobra.Command, _ []string) error {
	_, state, log, closer, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer log.Sync()
	defer closer.Close()

	out := make(map[string]secretOutput, len(secrets.Required))
	for _, n := range state.Secrets.Names() {
		so := secretOutput{Status: state.Secrets.Status(n)}
		if ferr := state.Secrets.Failure(n); ferr != nil {
			so.Error = ferr.Error()
		}
		out[string(n)] = so
	}
	return printJSON(cmd.OutOrStdout(), out)
}

func runVersion(cmd *cobra.Command, _ []string) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s v%s\n", app.ServiceName, app.Version)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
