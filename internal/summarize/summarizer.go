// Package summarize adds LLM-generated TL;DR summaries, keywords, and
// topic classifiers to retrieved papers.
package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/MaoSong2022/arxiv-daily/internal/config"
	"github.com/MaoSong2022/arxiv-daily/internal/model"
)

// errorClassifier marks papers whose summarization request failed.
// They still appear in reports, grouped under this label, so a flaky
// provider never silently drops papers from the day.
const errorClassifier = "error"

// Chatter is the single-turn chat interface the summarizer needs.
//
// Design decision: We depend on this one-method interface rather than a
// concrete SDK client so tests can substitute a canned responder and the
// provider can be swapped without touching the summarization logic.
type Chatter interface {
	// Chat sends one user prompt and returns the model's text response.
	Chat(ctx context.Context, prompt string) (string, error)
}

// Summarizer annotates papers with summaries, keywords, and classifiers.
type Summarizer struct {
	// chatter performs the LLM requests.
	chatter Chatter

	// classifiers is the label list presented to the model.
	classifiers []string

	// workers bounds concurrent requests.
	workers int

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures a Summarizer.
type Option func(*Summarizer)

// WithClassifiers overrides the default classifier list.
func WithClassifiers(classifiers []string) Option {
	return func(s *Summarizer) {
		if len(classifiers) > 0 {
			s.classifiers = classifiers
		}
	}
}

// WithWorkers sets the number of concurrent summarization requests.
func WithWorkers(n int) Option {
	return func(s *Summarizer) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Summarizer) {
		s.logger = logger
	}
}

// New creates a Summarizer backed by the given chatter.
func New(chatter Chatter, opts ...Option) *Summarizer {
	s := &Summarizer{
		chatter:     chatter,
		classifiers: config.Classifiers(),
		workers:     config.DefaultSummarizeWorkers,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SummarizeAll annotates every paper in place, running up to the
// configured number of requests concurrently. Individual failures are
// recorded on the affected paper (classifier "error") and never abort
// the batch; only context cancellation stops the run early.
func (s *Summarizer) SummarizeAll(ctx context.Context, papers []model.Paper) ([]model.Paper, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i := range papers {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.summarizeOne(ctx, &papers[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return papers, fmt.Errorf("summarize papers: %w", err)
	}
	return papers, nil
}

// summarizeOne annotates a single paper.
func (s *Summarizer) summarizeOne(ctx context.Context, p *model.Paper) {
	prompt := s.Prompt(p)
	s.logger.Debug("summarizing paper", "id", p.ID, "prompt", prompt)

	response, err := s.chatter.Chat(ctx, prompt)
	if err != nil {
		s.logger.Error("summarization failed", "id", p.ID, "error", err)
		p.TLDR = ""
		p.Keywords = nil
		p.Classifiers = []string{errorClassifier}
		return
	}

	summary := ParseResponse(response)
	p.TLDR = summary.TLDR
	p.Keywords = summary.Keywords
	p.Classifiers = summary.Classifiers

	s.logger.Debug("added summary",
		"id", p.ID,
		"tldr", p.TLDR,
		"keywords", strings.Join(p.Keywords, ", "),
		"classifiers", strings.Join(p.Classifiers, ", "),
	)
}

// Prompt builds the summarization prompt for one paper.
func (s *Summarizer) Prompt(p *model.Paper) string {
	return fmt.Sprintf(config.PromptTemplate, p.Title, p.Abstract, strings.Join(s.classifiers, ", "))
}
