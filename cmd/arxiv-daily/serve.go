package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/MaoSong2022/arxiv-daily/internal/config"
	"github.com/MaoSong2022/arxiv-daily/internal/log"
	"github.com/MaoSong2022/arxiv-daily/internal/prefs"
	"github.com/MaoSong2022/arxiv-daily/internal/review"
	"github.com/MaoSong2022/arxiv-daily/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive review page for a stored day",
		Long: `Serve starts a local web server with the interactive review page for a
stored daily run: hide papers, edit keywords, TL;DR and comments, delete
categories, and export the remaining selection as JSON or Markdown.

Edits live in the review session; the stored run is not modified.
The card density preference persists across sessions.

Examples:
  # Review the latest stored day
  arxiv-daily serve

  # Review a specific day on another port
  arxiv-daily serve --date 2025-06-04 --addr :9000`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("date", "d", "",
		"Stored run date in YYYY-MM-DD format (default: latest)")
	cmd.Flags().StringP("addr", "a", config.DefaultServeAddr,
		"Listen address for the review server")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	logger := log.NewLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return err
	}

	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	daily, err := loadStoredReport(cmd.Context(), cmd, db)
	if err != nil {
		return err
	}

	store, err := prefs.Open(config.XDGConfigDir())
	if err != nil {
		return fmt.Errorf("failed to open preference store: %w", err)
	}

	state := review.NewState(daily, store, review.WithLogger(logger))
	srv, err := server.New(state, server.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	fmt.Printf("Reviewing %s (%d papers). Open http://localhost%s\n",
		daily.Date.Format(dateFlagFormat), daily.TotalPapers(), addr)
	return srv.Run(addr)
}
