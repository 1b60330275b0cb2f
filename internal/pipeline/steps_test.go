package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MaoSong2022/arxiv-daily/internal/config"
	"github.com/MaoSong2022/arxiv-daily/internal/database"
	"github.com/MaoSong2022/arxiv-daily/internal/model"
	"github.com/MaoSong2022/arxiv-daily/internal/summarize"
)

// fakeRetriever serves canned papers per category with an optional delay,
// to exercise completion-order independence.
type fakeRetriever struct {
	papers map[string][]model.Paper
	delay  map[string]time.Duration
	err    error
}

func (f *fakeRetriever) Retrieve(_ context.Context, category string) ([]model.Paper, error) {
	if f.err != nil {
		return nil, f.err
	}
	time.Sleep(f.delay[category])
	return f.papers[category], nil
}

// TestRetrieveStep verifies concurrent retrieval keeps category order.
func TestRetrieveStep(t *testing.T) {
	t.Parallel()

	t.Run("papers follow category order, not completion order", func(t *testing.T) {
		t.Parallel()

		retriever := &fakeRetriever{
			papers: map[string][]model.Paper{
				"cs.LG": {{ID: "lg-1"}, {ID: "lg-2"}},
				"cs.AI": {{ID: "ai-1"}},
			},
			delay: map[string]time.Duration{"cs.LG": 30 * time.Millisecond},
		}
		step := NewRetrieveStep(retriever, []string{"cs.LG", "cs.AI"})

		run := newTestRun()
		if err := step.Do(context.Background(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var ids []string
		for _, p := range run.Papers {
			ids = append(ids, p.ID)
		}
		want := "lg-1 lg-2 ai-1"
		if got := strings.Join(ids, " "); got != want {
			t.Errorf("unexpected paper order: %q, want %q", got, want)
		}
	})

	t.Run("failed category fails the step", func(t *testing.T) {
		t.Parallel()

		retriever := &fakeRetriever{err: errors.New("api down")}
		step := NewRetrieveStep(retriever, []string{"cs.LG"})

		if err := step.Do(context.Background(), newTestRun()); err == nil {
			t.Error("expected retrieval error")
		}
	})
}

// TestDedupeStep verifies cross-listed papers collapse to one entry.
func TestDedupeStep(t *testing.T) {
	t.Parallel()

	run := newTestRun()
	run.Papers = []model.Paper{
		{ID: "a", PrimaryCategory: "cs.LG"},
		{ID: "b"},
		{ID: "a", PrimaryCategory: "cs.AI"},
		{ID: "c"},
	}

	if err := NewDedupeStep(nil).Do(context.Background(), run); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(run.Papers) != 3 {
		t.Fatalf("expected 3 papers, got %d", len(run.Papers))
	}
	// First occurrence wins.
	if run.Papers[0].ID != "a" || run.Papers[0].PrimaryCategory != "cs.LG" {
		t.Errorf("unexpected first paper: %+v", run.Papers[0])
	}
}

// TestSummarizeStep verifies papers come back annotated.
func TestSummarizeStep(t *testing.T) {
	t.Parallel()

	chatter := chatterFunc(func(context.Context, string) (string, error) {
		return "TL;DR: Short.\nKeywords: Agents\nClassifier: agent", nil
	})
	step := NewSummarizeStep(summarize.New(chatter), nil)

	run := newTestRun()
	run.Papers = []model.Paper{{ID: "a", Title: "T", Abstract: "A"}}

	if err := step.Do(context.Background(), run); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run.Papers[0].TLDR != "Short." {
		t.Errorf("paper not annotated: %+v", run.Papers[0])
	}
}

// chatterFunc adapts a function to the summarize.Chatter interface.
type chatterFunc func(ctx context.Context, prompt string) (string, error)

func (f chatterFunc) Chat(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// TestGroupStep verifies the report sections are built from the run papers.
func TestGroupStep(t *testing.T) {
	t.Parallel()

	run := newTestRun()
	run.Papers = []model.Paper{
		{ID: "a", Classifiers: []string{"agent"}},
		{ID: "b", Classifiers: []string{"survey"}},
		{ID: "c", Classifiers: []string{"agent"}},
	}

	if err := NewGroupStep().Do(context.Background(), run); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(run.Report.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(run.Report.Sections))
	}
	if len(run.Report.Section("agent").Papers) != 2 {
		t.Errorf("unexpected agent section: %+v", run.Report.Section("agent"))
	}
}

// TestStoreStep verifies the run lands in the database.
func TestStoreStep(t *testing.T) {
	t.Parallel()

	db, err := database.Open(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = db.Close() }()

	run := newTestRun()
	run.Papers = []model.Paper{{ID: "a", Classifiers: []string{"agent"}}}
	if err := NewGroupStep().Do(context.Background(), run); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := NewStoreStep(db).Do(context.Background(), run); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := db.LoadReport(context.Background(), run.Report.Date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.TotalPapers() != 1 {
		t.Errorf("stored run has %d papers", loaded.TotalPapers())
	}
}

// TestRenderStep verifies all report documents are written.
func TestRenderStep(t *testing.T) {
	t.Parallel()

	outputDir := t.TempDir()
	run := newTestRun()
	run.Papers = []model.Paper{{
		ID:          "2506.00001",
		Title:       "Planning Agents",
		Classifiers: []string{"agent"},
	}}
	if err := NewGroupStep().Do(context.Background(), run); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := NewRenderStep(outputDir, nil).Do(context.Background(), run); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dir := filepath.Join(outputDir, "2025-06-04")
	for _, name := range []string{JSONReportFile, MarkdownReportFile, HTMLReportFile} {
		data, err := os.ReadFile(filepath.Join(dir, name)) //nolint:gosec // Test-owned path
		if err != nil {
			t.Fatalf("missing output %s: %v", name, err)
		}
		if !strings.Contains(string(data), "Planning Agents") {
			t.Errorf("%s does not mention the paper", name)
		}
	}
}

// TestDefaultPipeline verifies the standard step assembly.
func TestDefaultPipeline(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.OutputDir = t.TempDir()

	t.Run("without summarizer or database", func(t *testing.T) {
		t.Parallel()

		p := DefaultPipeline(&fakeRetriever{}, cfg.Categories, nil, nil, cfg)
		want := []string{"retrieve", "dedupe", "group", "render"}
		if got := strings.Join(p.StepNames(), " "); got != strings.Join(want, " ") {
			t.Errorf("unexpected steps: %v", p.StepNames())
		}
	})

	t.Run("with summarizer and database", func(t *testing.T) {
		t.Parallel()

		db, err := database.Open(t.TempDir())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer func() { _ = db.Close() }()

		s := summarize.New(chatterFunc(func(context.Context, string) (string, error) {
			return "", nil
		}))
		p := DefaultPipeline(&fakeRetriever{}, cfg.Categories, s, db, cfg)
		want := []string{"retrieve", "dedupe", "summarize", "group", "store", "render"}
		if got := strings.Join(p.StepNames(), " "); got != strings.Join(want, " ") {
			t.Errorf("unexpected steps: %v", p.StepNames())
		}
	})
}
