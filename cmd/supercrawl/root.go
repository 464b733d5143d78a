package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/supercrawl/internal/config"
)

// NewRootCmd creates the root command for SuperCrawl.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "supercrawl",
		Short: "Client for the SuperCrawl website-auditing service",
		Long: `SuperCrawl registers domains as projects, starts crawls on the SuperCrawl
backend, and reviews the SEO issues each crawl found.

Crawls run on the backend and finish in the background. Issue listings show
what the backend has recorded so far; run the command again (or press r in
the TUI) to reload.

Settings are read from .supercrawl (YAML), then .env and SUPERCRAWL_*
environment variables, then flags.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .supercrawl in current or home directory)")
	cmd.PersistentFlags().String("api-url", config.DefaultAPIURL, "Backend API root URL")
	cmd.PersistentFlags().String("user-id", config.DefaultUserID, "Owner of created projects")
	cmd.PersistentFlags().Duration("timeout", config.DefaultTimeout, "Deadline for each command")
	cmd.PersistentFlags().String("proxy", "",
		"SOCKS5 proxy for backend traffic (host:port or socks5://host:port)")

	// Add subcommands
	cmd.AddCommand(NewProjectsCmd())
	cmd.AddCommand(NewCreateCmd())
	cmd.AddCommand(NewIssuesCmd())
	cmd.AddCommand(NewPagesCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewHealthCmd())
	cmd.AddCommand(NewTUICmd())
	cmd.AddCommand(NewDevServerCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
