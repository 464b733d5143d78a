package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewHealthCmd creates the health command.
func NewHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is reachable",
		Long: `Health calls the backend health endpoint and exits with a non-zero status
when the backend is unreachable or reports itself unhealthy.`,
		Args: cobra.NoArgs,
		RunE: runHealthCmd,
	}
}

// runHealthCmd executes the health command.
func runHealthCmd(cmd *cobra.Command, _ []string) error {
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

	h, err := client.Health(ctx)
	if err != nil {
		return fmt.Errorf("backend %s unreachable: %w", client.BaseURL(), err)
	}

	service := h.Service
	if service == "" {
		service = "backend"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s at %s: %s\n", service, client.BaseURL(), h.Status)
	if !h.Healthy() {
		return fmt.Errorf("backend reports status %q", h.Status)
	}
	return nil
}
