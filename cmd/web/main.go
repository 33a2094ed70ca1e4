// cmd/web/main.go
//
// backend-api – HTTP entry point.
//
// Start-up sequence
// -----------------
//
//  1. Bootstrap a JSON logger so config errors are visible.
//
//  2. Load config (defaults → conf/.env → conf/global.yaml → env vars).
//
//  3. Start the configured logger (rotating file and/or stdout).
//
//  4. Build the secret backend client (gcp, vault, env, or none).
//
//  5. app.Init: resolve environment, load every secret once.
//
//  6. Build the router and serve until SIGINT/SIGTERM, then drain.
//
// Subcommands `env` and `secrets` run steps 1-5 and print the result
// without opening a listener, for deploy-time smoke checks.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if boot, err := zap.NewProduction(); err == nil {
		zap.ReplaceGlobals(boot)
	}

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Load secrets and serve the HTTP API",
		RunE:  runServe,
	}

	root := &cobra.Command{
		Use:           "backend-api",
		Short:         "Environment-aware backend API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	envCmd := &cobra.Command{
		Use:   "env",
		Short: "Print the resolved environment as JSON",
		RunE:  runEnv,
	}

	secretsCmd := &cobra.Command{
		Use:   "secrets",
		Short: "Run one secret load pass and print masked status as JSON",
		RunE:  runSecrets,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run:   runVersion,
	}

	root.AddCommand(serveCmd, envCmd, secretsCmd, versionCmd)
	return root
}
