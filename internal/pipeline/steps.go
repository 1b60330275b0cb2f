package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MaoSong2022/arxiv-daily/internal/arxiv"
	"github.com/MaoSong2022/arxiv-daily/internal/config"
	"github.com/MaoSong2022/arxiv-daily/internal/database"
	"github.com/MaoSong2022/arxiv-daily/internal/mirror"
	"github.com/MaoSong2022/arxiv-daily/internal/model"
	"github.com/MaoSong2022/arxiv-daily/internal/report"
	"github.com/MaoSong2022/arxiv-daily/internal/summarize"
)

// Retriever fetches the papers announced in one arXiv category for the
// run's date. The API client and the mirror client both satisfy it
// through the adapters below, so the retrieve step doesn't care which
// source is in use.
type Retriever interface {
	Retrieve(ctx context.Context, category string) ([]model.Paper, error)
}

// APIRetriever retrieves papers from the arXiv API for one
// announcement window.
type APIRetriever struct {
	client     *arxiv.Client
	window     arxiv.Window
	maxResults int
	categories []string
}

// NewAPIRetriever creates a Retriever backed by the arXiv API.
// The category list is needed for cross-list filtering: a paper only
// counts for its primary category among the queried ones.
func NewAPIRetriever(client *arxiv.Client, window arxiv.Window, maxResults int, categories []string) *APIRetriever {
	return &APIRetriever{
		client:     client,
		window:     window,
		maxResults: maxResults,
		categories: categories,
	}
}

// Retrieve fetches one category's announcements from the API.
func (r *APIRetriever) Retrieve(ctx context.Context, category string) ([]model.Paper, error) {
	return r.client.QueryCategory(ctx, category, r.window, r.maxResults, r.categories)
}

// MirrorRetriever retrieves papers from the papers.cool mirror.
// The mirror serves by announcement date directly, so no window
// arithmetic is involved.
type MirrorRetriever struct {
	client *mirror.Client
	date   time.Time
}

// NewMirrorRetriever creates a Retriever backed by the mirror.
func NewMirrorRetriever(client *mirror.Client, date time.Time) *MirrorRetriever {
	return &MirrorRetriever{client: client, date: date}
}

// Retrieve fetches one category's listing from the mirror.
func (r *MirrorRetriever) Retrieve(ctx context.Context, category string) ([]model.Paper, error) {
	return r.client.QueryCategory(ctx, category, r.date)
}

// RetrieveStep fetches the day's papers for every queried category.
//
// Design decision: Categories are fetched concurrently because each is
// an independent upstream request and the arXiv API is the slowest part
// of the run. Paper order still follows the category order, not request
// completion order, so reports are reproducible.
type RetrieveStep struct {
	// retriever is the paper source.
	retriever Retriever

	// categories to query, in report order.
	categories []string

	// logger for structured logging.
	logger *slog.Logger
}

// RetrieveStepOption configures a RetrieveStep.
type RetrieveStepOption func(*RetrieveStep)

// WithRetrieveLogger sets a custom logger for the retrieve step.
func WithRetrieveLogger(logger *slog.Logger) RetrieveStepOption {
	return func(s *RetrieveStep) {
		s.logger = logger
	}
}

// NewRetrieveStep creates a new retrieval step.
func NewRetrieveStep(retriever Retriever, categories []string, opts ...RetrieveStepOption) *RetrieveStep {
	s := &RetrieveStep{
		retriever:  retriever,
		categories: categories,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *RetrieveStep) Name() string {
	return "retrieve"
}

// Do executes the retrieval step.
func (s *RetrieveStep) Do(ctx context.Context, run *Run) error {
	perCategory := make([][]model.Paper, len(s.categories))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for i, category := range s.categories {
		i, category := i, category
		g.Go(func() error {
			papers, err := s.retriever.Retrieve(ctx, category)
			if err != nil {
				return fmt.Errorf("retrieve %s: %w", category, err)
			}
			s.logger.Info("retrieved category", "category", category, "papers", len(papers))

			mu.Lock()
			perCategory[i] = papers
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, papers := range perCategory {
		run.Papers = append(run.Papers, papers...)
	}
	return nil
}

// DedupeStep drops papers already seen earlier in the run.
// A paper cross-listed under several queried categories appears once,
// under the first category that produced it.
type DedupeStep struct {
	// logger for structured logging.
	logger *slog.Logger
}

// NewDedupeStep creates a new deduplication step.
func NewDedupeStep(logger *slog.Logger) *DedupeStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &DedupeStep{logger: logger}
}

// Name returns the step name.
func (s *DedupeStep) Name() string {
	return "dedupe"
}

// Do executes the deduplication step.
func (s *DedupeStep) Do(_ context.Context, run *Run) error {
	seen := make(map[string]struct{}, len(run.Papers))
	deduped := run.Papers[:0]
	for _, p := range run.Papers {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		deduped = append(deduped, p)
	}

	dropped := len(run.Papers) - len(deduped)
	if dropped > 0 {
		s.logger.Info("dropped duplicate papers", "count", dropped)
	}
	run.Papers = deduped
	return nil
}

// SummarizeStep annotates every paper with a TL;DR, keywords and a
// classifier via the language model.
type SummarizeStep struct {
	// summarizer runs the annotation requests.
	summarizer *summarize.Summarizer

	// logger for structured logging.
	logger *slog.Logger
}

// NewSummarizeStep creates a new summarization step.
func NewSummarizeStep(summarizer *summarize.Summarizer, logger *slog.Logger) *SummarizeStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummarizeStep{summarizer: summarizer, logger: logger}
}

// Name returns the step name.
func (s *SummarizeStep) Name() string {
	return "summarize"
}

// Do executes the summarization step.
func (s *SummarizeStep) Do(ctx context.Context, run *Run) error {
	papers, err := s.summarizer.SummarizeAll(ctx, run.Papers)
	if err != nil {
		return fmt.Errorf("summarize papers: %w", err)
	}
	run.Papers = papers
	return nil
}

// GroupStep folds the flat paper list into the report's classifier
// sections. Everything after this step reads the report, not the list.
type GroupStep struct{}

// NewGroupStep creates a new grouping step.
func NewGroupStep() *GroupStep {
	return &GroupStep{}
}

// Name returns the step name.
func (s *GroupStep) Name() string {
	return "group"
}

// Do executes the grouping step.
func (s *GroupStep) Do(_ context.Context, run *Run) error {
	run.Report.GroupBySections(run.Papers)
	return nil
}

// StoreStep persists the report as the day's stored run.
type StoreStep struct {
	// db is the run storage.
	db *database.PaperDB
}

// NewStoreStep creates a new storage step.
func NewStoreStep(db *database.PaperDB) *StoreStep {
	return &StoreStep{db: db}
}

// Name returns the step name.
func (s *StoreStep) Name() string {
	return "store"
}

// Do executes the storage step.
func (s *StoreStep) Do(ctx context.Context, run *Run) error {
	if err := s.db.SaveReport(ctx, run.Report); err != nil {
		return fmt.Errorf("store daily run: %w", err)
	}
	return nil
}

// Output file names produced by the render step.
const (
	JSONReportFile     = "report.json"
	MarkdownReportFile = "paper_report.md"
	HTMLReportFile     = "report.html"
)

// RenderStep writes the report documents into the output directory,
// under one subdirectory per date.
type RenderStep struct {
	// outputDir is the root output directory.
	outputDir string

	// logger for structured logging.
	logger *slog.Logger
}

// NewRenderStep creates a new render step.
func NewRenderStep(outputDir string, logger *slog.Logger) *RenderStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &RenderStep{outputDir: outputDir, logger: logger}
}

// Name returns the step name.
func (s *RenderStep) Name() string {
	return "render"
}

// Do executes the render step.
func (s *RenderStep) Do(_ context.Context, run *Run) error {
	dir := filepath.Join(s.outputDir, run.Report.Date.Format("2006-01-02"))
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if err := s.renderFile(filepath.Join(dir, JSONReportFile), func(f *os.File) report.Writer {
		return report.NewJSONWriter(f, report.WithPrettyPrint())
	}, run.Report); err != nil {
		return err
	}
	if err := s.renderFile(filepath.Join(dir, MarkdownReportFile), func(f *os.File) report.Writer {
		return report.NewMarkdownWriter(f)
	}, run.Report); err != nil {
		return err
	}
	if err := s.renderFile(filepath.Join(dir, HTMLReportFile), func(f *os.File) report.Writer {
		return report.NewHTMLWriter(f)
	}, run.Report); err != nil {
		return err
	}

	s.logger.Info("rendered report", "dir", dir, "papers", run.Report.TotalPapers())
	return nil
}

// renderFile writes one report document, closing the file on all paths.
func (s *RenderStep) renderFile(path string, writer func(*os.File) report.Writer, r *model.DailyReport) error {
	f, err := os.Create(path) //nolint:gosec // Path is built from the configured output dir
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	defer func() { _ = f.Close() }()

	if _, err := writer(f).Write(r); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

// DefaultPipeline assembles the standard daily pipeline:
// retrieve, dedupe, summarize, group, store, render.
//
// Design decision: We provide a default pipeline because:
// 1. Most users want the full daily run
// 2. It reduces boilerplate in the CLI
// 3. It ensures consistent step ordering
//
// The summarize step is skipped entirely when summarizer is nil, which
// keeps the report usable (ungrouped papers land in the catch-all
// section) when no API key is configured.
func DefaultPipeline(
	retriever Retriever,
	categories []string,
	summarizer *summarize.Summarizer,
	db *database.PaperDB,
	cfg *config.Config,
	opts ...Option,
) *Pipeline {
	p := New(opts...)

	p.AddSteps(
		NewRetrieveStep(retriever, categories, WithRetrieveLogger(p.logger)),
		NewDedupeStep(p.logger),
	)
	if summarizer != nil {
		p.AddStep(NewSummarizeStep(summarizer, p.logger))
	}
	p.AddStep(NewGroupStep())
	if db != nil {
		p.AddStep(NewStoreStep(db))
	}
	p.AddStep(NewRenderStep(cfg.OutputDir, p.logger))

	return p
}
