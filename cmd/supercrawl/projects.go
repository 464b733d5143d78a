package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/supercrawl/internal/report"
)

// NewProjectsCmd creates the projects command.
func NewProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List registered projects",
		Long: `List the projects registered on the backend, in the order the backend returns them.

Examples:
  supercrawl projects
  supercrawl projects --json`,
		Args: cobra.NoArgs,
		RunE: runProjectsCmd,
	}

	cmd.Flags().BoolP("json", "j", false, "Output JSON")

	return cmd
}

// runProjectsCmd executes the projects command.
func runProjectsCmd(cmd *cobra.Command, _ []string) error {
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

	ctrl, stop := startController(ctx, cfg, client, logger)
	defer stop()

	s, err := ctrl.WaitFor(ctx, projectsLoaded)
	if err != nil {
		return fmt.Errorf("waiting for project list: %w", err)
	}
	if s.ProjectsErr != nil {
		return fmt.Errorf("failed to load projects: %w", s.ProjectsErr)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		_, err := report.NewJSONWriter(out, report.WithPrettyPrint()).WriteValue(s.Projects)
		return err
	}
	return report.NewSimpleWriter(out).WriteProjects(s.Projects)
}
