package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/supercrawl/internal/api"
	"github.com/nao1215/supercrawl/internal/config"
	"github.com/nao1215/supercrawl/internal/controller"
	"github.com/nao1215/supercrawl/internal/crawl"
	"github.com/nao1215/supercrawl/internal/issue"
	sclog "github.com/nao1215/supercrawl/internal/log"
	"github.com/nao1215/supercrawl/internal/project"
)

// buildConfig loads the layered configuration and applies the global flags
// the user set explicitly.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if flags.Changed("api-url") {
		if cfg.APIURL, err = flags.GetString("api-url"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("user-id") {
		if cfg.UserID, err = flags.GetString("user-id"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("proxy") {
		if cfg.Proxy, err = flags.GetString("proxy"); err != nil {
			return nil, err
		}
	}

	cfg.Verbose = getVerboseFlag(cmd)
	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger based on verbosity setting.
// Logs go to stderr so that reports on stdout stay machine-readable.
func setupLogger(verbose bool) *slog.Logger {
	return sclog.NewLogger(os.Stderr, verbose)
}

// prepare validates the configuration and sets up logging.
func prepare(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)
	if cfg.ConfigFilePath != "" {
		logger.Debug("loaded configuration file", "path", cfg.ConfigFilePath)
	}
	return cfg, logger, nil
}

// commandContext returns a context cancelled on SIGINT/SIGTERM and, when
// timeout is positive, after the timeout.
func commandContext(parent context.Context, cfg *config.Config) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	if cfg.Timeout <= 0 {
		return ctx, stop
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

// newClient creates the backend API client from the configuration.
func newClient(cfg *config.Config, logger *slog.Logger) (*api.Client, error) {
	opts := []api.Option{api.WithLogger(logger)}
	if cfg.Proxy != "" {
		opts = append(opts, api.WithProxy(cfg.Proxy))
	}
	if len(cfg.Headers) > 0 {
		opts = append(opts, api.WithHeaders(cfg.Headers))
	}
	return api.NewClient(cfg.APIURL, opts...)
}

// startController wires the store, launcher and viewer to client and runs a
// controller until the returned stop function is called.
func startController(ctx context.Context, cfg *config.Config, client *api.Client, logger *slog.Logger) (*controller.Controller, func()) {
	store := project.NewStore(client, project.WithLogger(logger))
	launcher := crawl.NewLauncher(store, client, crawl.WithLogger(logger))
	viewer := issue.NewViewer(client, issue.WithLogger(logger))

	ctrl := controller.New(launcher, store, viewer,
		controller.WithUserID(cfg.UserID),
		controller.WithLogger(logger),
	)

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := ctrl.Run(runCtx); err != nil {
			logger.Error("controller stopped", "error", err)
		}
	}()

	return ctrl, func() {
		cancel()
		<-done
	}
}

// projectsLoaded reports whether the project list has been loaded at least once.
func projectsLoaded(s controller.State) bool {
	return s.Version > 0 && !s.LoadingProjects
}
