package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/MaoSong2022/arxiv-daily/internal/config"
	"github.com/MaoSong2022/arxiv-daily/internal/database"
	"github.com/MaoSong2022/arxiv-daily/internal/log"
	"github.com/MaoSong2022/arxiv-daily/internal/model"
	"github.com/MaoSong2022/arxiv-daily/internal/report"
)

// NewReportCmd creates the report command.
func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a stored day's report again",
		Long: `Report re-renders a stored daily run without re-fetching or
re-summarizing anything.

Examples:
  # Print the latest stored day as Markdown
  arxiv-daily report

  # Print a specific day as JSON
  arxiv-daily report --date 2025-06-04 --json

  # Write the standalone HTML page
  arxiv-daily report --html --output report.html

  # List the stored days
  arxiv-daily report --list`,
		Args: cobra.NoArgs,
		RunE: runReportCmd,
	}

	cmd.Flags().StringP("date", "d", "",
		"Stored run date in YYYY-MM-DD format (default: latest)")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown digest (default)")
	cmd.Flags().Bool("html", false,
		"Output the standalone HTML page")
	cmd.Flags().StringP("output", "o", "",
		"Write to a file instead of stdout")
	cmd.Flags().BoolP("list", "l", false,
		"List stored run dates instead of rendering")
	cmd.MarkFlagsMutuallyExclusive("json", "markdown", "html")

	return cmd
}

// runReportCmd executes the report command.
func runReportCmd(cmd *cobra.Command, _ []string) error {
	logger := log.NewLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	jsonOut, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	htmlOut, err := cmd.Flags().GetBool("html")
	if err != nil {
		return err
	}

	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}

	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()

	if list {
		return listDates(ctx, cmd, db)
	}

	daily, err := loadStoredReport(ctx, cmd, db)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path) //nolint:gosec // Path comes from the --output flag
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	var w report.Writer
	switch {
	case jsonOut:
		w = report.NewJSONWriter(out, report.WithPrettyPrint())
	case htmlOut:
		w = report.NewHTMLWriter(out)
	default:
		w = report.NewMarkdownWriter(out)
	}
	_, err = w.Write(daily)
	return err
}

// openDatabase opens the run database in the XDG data directory.
func openDatabase() (*database.PaperDB, error) {
	db, err := database.Open(config.XDGDataDir())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// listDates prints the stored run dates, newest first.
func listDates(ctx context.Context, cmd *cobra.Command, db *database.PaperDB) error {
	dates, err := db.ListDates(ctx)
	if err != nil {
		return err
	}
	if len(dates) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No stored runs. Run 'arxiv-daily fetch' first.")
		return nil
	}
	for _, d := range dates {
		fmt.Fprintln(cmd.OutOrStdout(), d.Format(dateFlagFormat))
	}
	return nil
}

// loadStoredReport loads the run for --date, or the latest stored run.
func loadStoredReport(ctx context.Context, cmd *cobra.Command, db *database.PaperDB) (*model.DailyReport, error) {
	dateStr, err := cmd.Flags().GetString("date")
	if err != nil {
		return nil, err
	}

	var date time.Time
	if dateStr == "" {
		if date, err = db.LatestDate(ctx); err != nil {
			if errors.Is(err, database.ErrRunNotFound) {
				return nil, errors.New("no stored runs; run 'arxiv-daily fetch' first")
			}
			return nil, err
		}
	} else {
		if date, err = time.Parse(dateFlagFormat, dateStr); err != nil {
			return nil, fmt.Errorf("invalid --date %q (want YYYY-MM-DD): %w", dateStr, err)
		}
	}

	daily, err := db.LoadReport(ctx, date)
	if err != nil {
		if errors.Is(err, database.ErrRunNotFound) {
			return nil, fmt.Errorf("no stored run for %s", date.Format(dateFlagFormat))
		}
		return nil, err
	}
	return daily, nil
}
