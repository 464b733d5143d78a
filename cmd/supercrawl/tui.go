package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/supercrawl/internal/tui"
)

// NewTUICmd creates the tui command.
func NewTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse projects and issues interactively",
		Long: `TUI opens an interactive terminal view: type a domain and press enter to
create a project and start its crawl, pick a project to see its issues, and
press r to reload while crawls are running.

The --timeout flag does not apply; the view runs until you quit.`,
		Args: cobra.NoArgs,
		RunE: runTUICmd,
	}
}

// runTUICmd executes the tui command.
func runTUICmd(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := prepare(cmd)
	if err != nil {
		return err
	}

	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctrl, stopCtrl := startController(ctx, cfg, client, logger)
	defer stopCtrl()

	return tui.Run(ctx, ctrl)
}
