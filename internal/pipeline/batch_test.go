package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MaoSong2022/arxiv-daily/internal/model"
)

// appendStep adds one canned paper to the run.
type appendStep struct {
	id string
}

func (s *appendStep) Name() string { return "append" }

func (s *appendStep) Do(_ context.Context, run *Run) error {
	run.Papers = append(run.Papers, model.Paper{ID: s.id})
	run.Report.GroupBySections(run.Papers)
	return nil
}

// failStep always fails.
type failStep struct{}

func (s *failStep) Name() string { return "fail" }

func (s *failStep) Do(context.Context, *Run) error {
	return errors.New("window closed")
}

// TestBackfillProcess verifies ordering and per-date failure isolation.
func TestBackfillProcess(t *testing.T) {
	t.Parallel()

	dates := []time.Time{
		time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC),
	}

	t.Run("reports come back in date order", func(t *testing.T) {
		t.Parallel()

		factory := func(date time.Time) *Pipeline {
			p := New()
			p.AddStep(&appendStep{id: date.Format("2006-01-02")})
			return p
		}
		b := NewBackfill(factory, []string{"cs.LG"}, WithConcurrency(3))

		reports, err := b.Process(context.Background(), dates)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(reports) != 3 {
			t.Fatalf("expected 3 reports, got %d", len(reports))
		}
		for i, r := range reports {
			if !r.Date.Equal(dates[i]) {
				t.Errorf("report %d has date %v, want %v", i, r.Date, dates[i])
			}
			if r.TotalPapers() != 1 {
				t.Errorf("report %d has %d papers", i, r.TotalPapers())
			}
		}
	})

	t.Run("one failed date does not stop the others", func(t *testing.T) {
		t.Parallel()

		factory := func(date time.Time) *Pipeline {
			p := New()
			if date.Equal(dates[1]) {
				p.AddStep(&failStep{})
			} else {
				p.AddStep(&appendStep{id: "ok"})
			}
			return p
		}
		b := NewBackfill(factory, []string{"cs.LG"})

		reports, err := b.Process(context.Background(), dates)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if reports[1].Error == "" {
			t.Error("failed date should carry its error")
		}
		if reports[0].TotalPapers() != 1 || reports[2].TotalPapers() != 1 {
			t.Error("other dates should have completed")
		}
	})
}
