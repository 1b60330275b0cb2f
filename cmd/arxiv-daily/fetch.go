package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MaoSong2022/arxiv-daily/internal/arxiv"
	"github.com/MaoSong2022/arxiv-daily/internal/config"
	"github.com/MaoSong2022/arxiv-daily/internal/database"
	"github.com/MaoSong2022/arxiv-daily/internal/log"
	"github.com/MaoSong2022/arxiv-daily/internal/mirror"
	"github.com/MaoSong2022/arxiv-daily/internal/model"
	"github.com/MaoSong2022/arxiv-daily/internal/pipeline"
	"github.com/MaoSong2022/arxiv-daily/internal/summarize"
)

// dateFlagFormat is the accepted format for the --date flag.
const dateFlagFormat = "2006-01-02"

// NewFetchCmd creates the fetch command.
func NewFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch and summarize today's arXiv announcements",
		Long: `Fetch retrieves the papers announced in the configured arXiv categories,
annotates each with a TL;DR, keywords and a topic classifier via an LLM,
stores the day's run, and renders the report documents.

Weekends have no arXiv announcements; fetching a weekend date reports
this and exits without a run.

Examples:
  # Fetch today's announcements
  arxiv-daily fetch

  # Fetch a specific announcement day
  arxiv-daily fetch --date 2025-06-04

  # Fetch without LLM summarization
  arxiv-daily fetch --skip-summarize

  # Fetch from the papers.cool mirror instead of the arXiv API
  arxiv-daily fetch --mirror

  # Re-run the last five announcement days
  arxiv-daily fetch --backfill 5

Configuration file (.arxiv-daily) example:
  categories:
    - cs.LG
    - cs.CL
  model: command-r
  output_dir: reports`,
		Args: cobra.NoArgs,
		RunE: runFetchCmd,
	}

	cmd.Flags().StringP("date", "d", "",
		"Announcement date to fetch in YYYY-MM-DD format (default: today)")
	cmd.Flags().StringSliceP("categories", "C", nil,
		"arXiv categories to query (default: cs.LG,cs.AI,cs.CV,cs.CL)")
	cmd.Flags().IntP("max-results", "n", config.DefaultMaxResults,
		"Maximum API results per category")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"HTTP timeout for each retrieval request")
	cmd.Flags().Bool("mirror", false,
		"Retrieve listings from the papers.cool mirror instead of the arXiv API")
	cmd.Flags().Bool("skip-summarize", false,
		"Skip LLM summarization (papers land in the catch-all section)")
	cmd.Flags().StringP("model", "m", config.DefaultModel,
		"Chat model used for summarization")
	cmd.Flags().IntP("workers", "w", config.DefaultSummarizeWorkers,
		"Concurrent summarization requests")
	cmd.Flags().StringP("output", "o", config.DefaultOutputDir,
		"Directory report documents are written into")
	cmd.Flags().String("db-dir", "",
		"Database directory (default: XDG data directory)")
	cmd.Flags().IntP("backfill", "b", 0,
		"Also fetch the N announcement days before --date")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .arxiv-daily in current or home directory)")

	return cmd
}

// runFetchCmd executes the fetch command.
func runFetchCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildFetchConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	backfill, err := cmd.Flags().GetInt("backfill")
	if err != nil {
		return err
	}

	return runFetch(ctx, cfg, backfill, logger)
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildFetchConfig creates a Config from cobra command flags plus the
// optional configuration file. Flags win over file values.
func buildFetchConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load file values first so explicitly set flags override them below.
	explicitConfigPath := cfg.ConfigFilePath != ""
	if configPath := config.FindConfigFile(cfg.ConfigFilePath); configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.Apply(file)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	if cmd.Flags().Changed("categories") {
		if cfg.Categories, err = cmd.Flags().GetStringSlice("categories"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("max-results") || cfg.MaxResults == 0 {
		if cfg.MaxResults, err = cmd.Flags().GetInt("max-results"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("timeout") || cfg.Timeout == 0 {
		if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("model") || cfg.Model == "" {
		if cfg.Model, err = cmd.Flags().GetString("model"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("output") {
		if cfg.OutputDir, err = cmd.Flags().GetString("output"); err != nil {
			return nil, err
		}
	}

	if cfg.UseMirror, err = cmd.Flags().GetBool("mirror"); err != nil {
		return nil, err
	}
	if cfg.SkipSummarize, err = cmd.Flags().GetBool("skip-summarize"); err != nil {
		return nil, err
	}
	if cfg.SummarizeWorkers, err = cmd.Flags().GetInt("workers"); err != nil {
		return nil, err
	}

	dateStr, err := cmd.Flags().GetString("date")
	if err != nil {
		return nil, err
	}
	if dateStr == "" {
		now := time.Now().UTC()
		cfg.Date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	} else {
		if cfg.Date, err = time.Parse(dateFlagFormat, dateStr); err != nil {
			return nil, fmt.Errorf("invalid --date %q (want YYYY-MM-DD): %w", dateStr, err)
		}
	}

	cfg.DBDir = config.XDGDataDir()
	if cmd.Flags().Changed("db-dir") {
		if cfg.DBDir, err = cmd.Flags().GetString("db-dir"); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// runFetch executes the daily run, or a backfill of several days.
func runFetch(ctx context.Context, cfg *config.Config, backfill int, logger *slog.Logger) error {
	db, err := database.Open(cfg.DBDir)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()
	logger.Info("database opened", "dir", cfg.DBDir)

	summarizer, err := buildSummarizer(cfg, logger)
	if err != nil {
		return err
	}

	dates := announcementDates(cfg.Date, backfill)
	if len(dates) == 0 {
		fmt.Println("No announcement days in the requested range (arXiv does not announce on weekends).")
		return nil
	}

	factory := func(date time.Time) *pipeline.Pipeline {
		return pipeline.DefaultPipeline(
			buildRetriever(cfg, date),
			cfg.Categories,
			summarizer,
			db,
			cfg,
			pipeline.WithLogger(logger),
			pipeline.WithContinueOnError(true),
		)
	}

	if len(dates) == 1 {
		run := pipeline.NewRun(model.NewDailyReport(dates[0], cfg.Categories))
		fmt.Printf("Fetching announcements for %s...\n", dates[0].Format(dateFlagFormat))
		if err := factory(dates[0]).Execute(ctx, run); err != nil {
			return err
		}
		fmt.Printf("Done: %d papers in %d sections.\n", run.Report.TotalPapers(), len(run.Report.Sections))
		return nil
	}

	b := pipeline.NewBackfill(factory, cfg.Categories, pipeline.WithBackfillLogger(logger))
	reports, err := b.Process(ctx, dates)
	if err != nil {
		return err
	}
	for _, r := range reports {
		status := fmt.Sprintf("%d papers", r.TotalPapers())
		if r.Error != "" {
			status = "failed: " + r.Error
		}
		fmt.Printf("%s: %s\n", r.Date.Format(dateFlagFormat), status)
	}
	return nil
}

// buildRetriever picks the paper source for one date.
func buildRetriever(cfg *config.Config, date time.Time) pipeline.Retriever {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	if cfg.UseMirror {
		return pipeline.NewMirrorRetriever(mirror.NewClient(mirror.WithHTTPClient(httpClient)), date)
	}

	// announcementDates only yields weekdays, so the window exists.
	window, _ := arxiv.AnnouncementWindow(date)
	client := arxiv.NewClient(arxiv.WithHTTPClient(httpClient))
	return pipeline.NewAPIRetriever(client, window, cfg.MaxResults, cfg.Categories)
}

// buildSummarizer assembles the LLM summarizer, or nil when
// summarization is disabled or no API key is configured.
func buildSummarizer(cfg *config.Config, logger *slog.Logger) (*summarize.Summarizer, error) {
	if cfg.SkipSummarize {
		return nil, nil
	}

	chatter, err := summarize.NewCohereChatter(cfg.Model)
	if errors.Is(err, summarize.ErrNoAPIKey) {
		logger.Warn("no API key configured, skipping summarization")
		fmt.Fprintln(os.Stderr, "Warning: COHERE_API_KEY not set; papers will not be summarized.")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create summarizer: %w", err)
	}

	classifiers := config.Classifiers()
	if cfg.File != nil && len(cfg.File.Classifiers) > 0 {
		classifiers = cfg.File.Classifiers
	}

	return summarize.New(chatter,
		summarize.WithClassifiers(classifiers),
		summarize.WithWorkers(cfg.SummarizeWorkers),
		summarize.WithLogger(logger),
	), nil
}

// announcementDates returns the requested date plus the backfill days
// before it, oldest first, keeping only days with an announcement
// window (weekdays).
func announcementDates(date time.Time, backfill int) []time.Time {
	var dates []time.Time
	for d := date.AddDate(0, 0, -backfill); !d.After(date); d = d.AddDate(0, 0, 1) {
		if _, err := arxiv.AnnouncementWindow(d); err != nil {
			continue
		}
		dates = append(dates, d)
	}
	return dates
}
