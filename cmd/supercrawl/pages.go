package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/supercrawl/internal/report"
)

// NewPagesCmd creates the pages command.
func NewPagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pages <project-id>",
		Short: "List the pages crawled for a project",
		Long: `Pages lists the pages recorded by the latest crawl of a project.

Examples:
  supercrawl pages 3f1c...
  supercrawl pages --json 3f1c...`,
		Args: cobra.ExactArgs(1),
		RunE: runPagesCmd,
	}

	cmd.Flags().BoolP("json", "j", false, "Output JSON")

	return cmd
}

// runPagesCmd executes the pages command.
func runPagesCmd(cmd *cobra.Command, args []string) error {
	cfg, logger, err := prepare(cmd)
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd.Context(), cfg)
	defer cancel()

	pages, err := client.ListPages(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to load pages: %w", err)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		_, err := report.NewJSONWriter(out, report.WithPrettyPrint()).WriteValue(pages)
		return err
	}
	return report.NewSimpleWriter(out).WritePages(pages)
}
