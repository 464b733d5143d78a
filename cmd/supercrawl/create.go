package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/supercrawl/internal/controller"
	"github.com/nao1215/supercrawl/internal/crawl"
	"github.com/nao1215/supercrawl/internal/report"
)

// NewCreateCmd creates the create command.
func NewCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <domain>",
		Short: "Create a project and start its crawl",
		Long: `Create registers a domain as a project and starts a crawl for it.

The command exits with a non-zero status when the project could not be
created, and also when the project was created but the crawl did not start.
In the second case the project id is printed so the crawl can be retried
from the backend; creating the project again would register a duplicate.

Examples:
  supercrawl create example.com
  supercrawl create https://shop.example.com --user-id alice`,
		Args: cobra.ExactArgs(1),
		RunE: runCreateCmd,
	}

	return cmd
}

// launchFinished reports whether the submitted create request and the
// project refresh it triggers have completed.
func launchFinished(s controller.State) bool {
	return s.LastLaunch != nil && !s.Creating && !s.LoadingProjects
}

// runCreateCmd executes the create command.
func runCreateCmd(cmd *cobra.Command, args []string) error {
	cfg, logger, err := prepare(cmd)
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

	ctrl.SubmitCreate(args[0])
	s, err := ctrl.WaitFor(ctx, launchFinished)
	if err != nil {
		return fmt.Errorf("waiting for project creation: %w", err)
	}

	out := cmd.OutOrStdout()
	res := s.LastLaunch
	switch res.Outcome {
	case crawl.Launched:
		fmt.Fprintln(out, s.Status)
	case crawl.CrawlStartFailed:
		fmt.Fprintln(out, s.Status)
		return fmt.Errorf("project %s exists but has no crawl", res.Project.ID)
	default:
		if res.Err == nil {
			return errors.New(s.Status)
		}
		return fmt.Errorf("project creation failed: %w", res.Err)
	}

	if s.ProjectsErr != nil {
		logger.Warn("project list not refreshed", "error", s.ProjectsErr)
		return nil
	}
	fmt.Fprintln(out)
	return report.NewSimpleWriter(out).WriteProjects(s.Projects)
}
