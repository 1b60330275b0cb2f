package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for arxiv-daily.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "arxiv-daily",
		Short: "Daily arXiv paper tracker and review tool",
		Long: `arxiv-daily tracks one day of arXiv announcements.

It fetches the papers announced in the configured categories, annotates
each with a TL;DR, keywords and a topic classifier via an LLM, stores
the day's run, and renders a Markdown digest plus an interactive review
page for selecting and exporting papers.

The summarizer reads its API key from the COHERE_API_KEY environment
variable; a .env file in the working directory is loaded automatically.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewFetchCmd())
	cmd.AddCommand(NewReportCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	// Best effort: a missing .env just means the environment is already set.
	_ = godotenv.Load()

	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
