package main

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/supercrawl/internal/config"
	"github.com/nao1215/supercrawl/internal/database"
	"github.com/nao1215/supercrawl/internal/devserver"
	sclog "github.com/nao1215/supercrawl/internal/log"
)

// NewDevServerCmd creates the devserver command.
func NewDevServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devserver",
		Short: "Run a local stand-in for the SuperCrawl backend",
		Long: `Devserver serves the backend REST API from a local SQLite database so the
client can be tried without the real crawler.

Starting a crawl records the pages of a fixture file under the project's
domain and derives SEO issues from their metadata. Nothing is fetched from
the network.

Examples:
  # Serve on the default address used by the client
  supercrawl devserver

  # Complete crawls after five seconds, to exercise reloading
  supercrawl devserver --crawl-delay 5s

  # Use custom fixture pages and a throwaway database
  supercrawl devserver --fixtures pages.yaml --db-dir /tmp/supercrawl`,
		Args: cobra.NoArgs,
		RunE: runDevServerCmd,
	}

	cmd.Flags().String("addr", config.DefaultDevServerAddr, "Listen address")
	cmd.Flags().String("db-dir", "",
		"Database directory (default: XDG data directory, e.g. ~/.local/share/supercrawl)")
	cmd.Flags().String("fixtures", "", "YAML file with the pages recorded by each crawl")
	cmd.Flags().Duration("crawl-delay", 0, "Time until a started crawl completes")
	cmd.Flags().Bool("log-json", false, "Write logs as JSON")

	return cmd
}

// runDevServerCmd executes the devserver command.
func runDevServerCmd(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	addr, err := flags.GetString("addr")
	if err != nil {
		return err
	}
	dbDir, err := flags.GetString("db-dir")
	if err != nil {
		return err
	}
	fixturesPath, err := flags.GetString("fixtures")
	if err != nil {
		return err
	}
	crawlDelay, err := flags.GetDuration("crawl-delay")
	if err != nil {
		return err
	}
	logJSON, err := flags.GetBool("log-json")
	if err != nil {
		return err
	}

	verbose := getVerboseFlag(cmd)
	var logger *slog.Logger
	if logJSON {
		logger = sclog.NewJSONLogger(os.Stderr, verbose)
	} else {
		logger = setupLogger(verbose)
	}
	slog.SetDefault(logger)

	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}
	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return err
	}
	defer db.Close()

	opts := []devserver.Option{
		devserver.WithLogger(logger),
		devserver.WithCrawlDelay(crawlDelay),
	}
	if fixturesPath != "" {
		fixtures, err := devserver.LoadFixtures(fixturesPath)
		if err != nil {
			return err
		}
		opts = append(opts, devserver.WithFixtures(fixtures))
	}

	srv, err := devserver.New(db, opts...)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Development server listening on http://%s (database: %s)\n", ln.Addr(), db.Path())
	fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop.")
	return srv.Serve(ctx, ln)
}
