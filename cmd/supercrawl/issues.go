package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/nao1215/supercrawl/internal/config"
	"github.com/nao1215/supercrawl/internal/controller"
	"github.com/nao1215/supercrawl/internal/model"
	"github.com/nao1215/supercrawl/internal/report"
)

// NewIssuesCmd creates the issues command.
func NewIssuesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issues <project-id>",
		Short: "Show the SEO issues of a project",
		Long: `Issues fetches the issues of the project's latest crawl and prints a report
grouped by severity. Critical and high issues are listed first; every other
severity the backend reports is grouped as "other".

A crawl finishes in the background, so a fresh project may show no issues
yet. Run the command again to reload.

Examples:
  supercrawl issues 3f1c...
  supercrawl issues --json 3f1c...
  supercrawl issues --markdown -o reports/example.md 3f1c...`,
		Args: cobra.ExactArgs(1),
		RunE: runIssuesCmd,
	}

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("show-empty", false, "List severities without issues in text output")

	return cmd
}

// issuesLoaded reports whether the issues of projectID were fetched or
// failed, with the project list loaded.
func issuesLoaded(projectID string) func(controller.State) bool {
	return func(s controller.State) bool {
		if !projectsLoaded(s) || s.SelectedID != projectID || s.LoadingIssues {
			return false
		}
		return s.IssuesCurrent() || s.IssuesErr != nil
	}
}

// runIssuesCmd executes the issues command.
func runIssuesCmd(cmd *cobra.Command, args []string) error {
	cfg, logger, err := prepare(cmd)
	if err != nil {
		return err
	}
	if err := applyReportFlags(cmd, cfg); err != nil {
		return err
	}
	showEmpty, err := cmd.Flags().GetBool("show-empty")
	if err != nil {
		return err
	}

	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd.Context(), cfg)
	defer cancel()

	ctrl, stop := startController(ctx, cfg, client, logger)
	defer stop()

	projectID := args[0]
	ctrl.SelectProject(projectID)
	s, err := ctrl.WaitFor(ctx, issuesLoaded(projectID))
	if err != nil {
		return fmt.Errorf("waiting for issues: %w", err)
	}
	if s.IssuesErr != nil {
		return fmt.Errorf("failed to load issues: %w", s.IssuesErr)
	}

	p, ok := s.SelectedProject()
	if !ok {
		logger.Warn("project not in project list", "project_id", projectID)
		p = model.Project{ID: projectID}
	}

	return outputReport(cmd, cfg, model.NewIssueReport(p, s.CurrentIssues(), time.Now()), showEmpty)
}

// applyReportFlags copies the report flags into cfg and validates them.
func applyReportFlags(cmd *cobra.Command, cfg *config.Config) error {
	var err error
	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return err
	}
	if cfg.ReportFile, err = cmd.Flags().GetString("output"); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	return nil
}

// outputReport renders the report in the configured format to stdout or,
// with --output, atomically to a file.
func outputReport(cmd *cobra.Command, cfg *config.Config, r *model.IssueReport, showEmpty bool) error {
	var buf bytes.Buffer

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewJSONWriter(&buf, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(&buf)
	default:
		w = report.NewSimpleWriter(&buf, report.WithShowEmpty(showEmpty), report.WithVerbose(cfg.Verbose))
	}
	if _, err := w.Write(r); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if cfg.ReportFile == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}

	dir := filepath.Dir(cfg.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := atomic.WriteFile(cfg.ReportFile, &buf); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s (%d issues)\n", cfg.ReportFile, r.Total())
	return nil
}
