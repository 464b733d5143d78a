package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/supercrawl/internal/config"
	"github.com/nao1215/supercrawl/internal/dashboard"
	"github.com/nao1215/supercrawl/internal/report"
)

// NewStatsCmd creates the stats command.
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show crawl statistics across all projects",
		Long: `Stats fetches the pages and issues of every project and prints totals:
projects crawled, pages indexed and issues by severity.

Projects are fetched concurrently; --concurrency bounds how many at once.

Examples:
  supercrawl stats
  supercrawl stats --json --concurrency 8`,
		Args: cobra.NoArgs,
		RunE: runStatsCmd,
	}

	cmd.Flags().BoolP("json", "j", false, "Output JSON")
	cmd.Flags().IntP("concurrency", "n", config.DefaultConcurrency,
		"Number of projects fetched at once")

	return cmd
}

// runStatsCmd executes the stats command.
func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := prepare(cmd)
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("concurrency") {
		if cfg.Concurrency, err = cmd.Flags().GetInt("concurrency"); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
	}

	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd.Context(), cfg)
	defer cancel()

	sum, err := dashboard.NewSummarizer(client,
		dashboard.WithConcurrency(cfg.Concurrency),
		dashboard.WithLogger(logger),
	).Summarize(ctx)
	if err != nil {
		return fmt.Errorf("failed to collect statistics: %w", err)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		_, err := report.NewJSONWriter(out, report.WithPrettyPrint()).WriteValue(sum)
		return err
	}
	return report.NewSimpleWriter(out).WriteSummary(sum)
}
