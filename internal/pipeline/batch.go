package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MaoSong2022/arxiv-daily/internal/model"
)

// Backfill runs the daily pipeline for multiple past dates concurrently.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use a separate Backfill rather than adding batch
// functionality to Pipeline because:
// 1. It keeps the Pipeline focused on single-day execution
// 2. It allows different batch strategies (e.g., rate limiting, retries)
// 3. It provides cleaner separation of concerns
type Backfill struct {
	// pipelineFactory creates a new pipeline for each date.
	// We use a factory to ensure each date gets a fresh pipeline
	// instance wired to that date's announcement window.
	pipelineFactory func(date time.Time) *Pipeline

	// categories to query for every date.
	categories []string

	// concurrency is the maximum number of concurrent daily runs.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores completed daily reports.
	// Access is synchronized via mutex.
	results []*model.DailyReport
	mu      sync.Mutex
}

// BackfillOption configures a Backfill.
type BackfillOption func(*Backfill)

// WithBackfillLogger sets a custom logger for backfill processing.
func WithBackfillLogger(logger *slog.Logger) BackfillOption {
	return func(b *Backfill) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent daily runs.
// Default is 2: backfill hits the same upstream APIs as a normal run,
// just for more days, so it stays conservative.
func WithConcurrency(n int) BackfillOption {
	return func(b *Backfill) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBackfill creates a new Backfill.
//
// The pipelineFactory function is called for each date to create a
// fresh pipeline instance. This ensures that pipeline state doesn't
// leak between runs and lets each run bind its own date window.
func NewBackfill(pipelineFactory func(date time.Time) *Pipeline, categories []string, opts ...BackfillOption) *Backfill {
	b := &Backfill{
		pipelineFactory: pipelineFactory,
		categories:      categories,
		concurrency:     2,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.logger == nil {
		b.logger = slog.Default()
	}

	return b
}

// Process runs the daily pipeline for every given date concurrently.
// It respects the configured concurrency limit and context cancellation.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
// Each date gets its own goroutine, but only 'concurrency' goroutines
// run simultaneously.
//
// Returns all reports collected, even for dates that failed; a failed
// date's error is recorded in its report. The error return indicates
// whether the batch itself was cancelled.
func (b *Backfill) Process(ctx context.Context, dates []time.Time) ([]*model.DailyReport, error) {
	b.logger.Info("starting backfill",
		"total_dates", len(dates),
		"concurrency", b.concurrency,
	)

	startTime := time.Now()

	// Pre-allocate results slice to maintain order
	b.results = make([]*model.DailyReport, len(dates))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, date := range dates {
		i, date := i, date
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			b.logger.Info("processing date",
				"date", date.Format("2006-01-02"),
				"index", i+1,
				"total", len(dates),
			)

			run := NewRun(model.NewDailyReport(date, b.categories))
			err := b.pipelineFactory(date).Execute(ctx, run)

			// Store result regardless of error
			// The report contains error information if the run failed
			b.mu.Lock()
			b.results[i] = run.Report
			b.mu.Unlock()

			if err != nil {
				b.logger.Warn("daily run failed",
					"date", date.Format("2006-01-02"),
					"error", err,
				)
				// Don't return the error to the errgroup - we want the
				// other dates to finish. The error is in the report.
				return nil
			}

			b.logger.Info("daily run completed",
				"date", date.Format("2006-01-02"),
				"papers", run.Report.TotalPapers(),
			)
			return nil
		})
	}

	err := g.Wait()

	b.logger.Info("backfill complete",
		"total_dates", len(dates),
		"elapsed", time.Since(startTime),
	)

	return b.results, err
}
