package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MaoSong2022/arxiv-daily/internal/model"
)

// testReport builds a small two-section report for storage tests.
func testReport(date time.Time) *model.DailyReport {
	r := model.NewDailyReport(date, []string{"cs.LG", "cs.AI"})
	r.GroupBySections([]model.Paper{
		{ID: "2506.00001", Title: "Agents", Classifiers: []string{"agent"}, Authors: []string{"Jane Doe"}},
		{ID: "2506.00002", Title: "Survey", Classifiers: []string{"survey"}},
		{ID: "2506.00003", Title: "More Agents", Classifiers: []string{"agent"}},
	})
	return r
}

// TestPaperDBSaveLoadRoundTrip verifies reports survive storage intact.
func TestPaperDBSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	pdb, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = pdb.Close() }()

	ctx := context.Background()
	date := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)

	if err := pdb.SaveReport(ctx, testReport(date)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := pdb.LoadReport(ctx, date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !loaded.Date.Equal(date) {
		t.Errorf("unexpected date: %v", loaded.Date)
	}
	if len(loaded.QueriedCategories) != 2 {
		t.Errorf("unexpected categories: %v", loaded.QueriedCategories)
	}
	if len(loaded.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(loaded.Sections))
	}
	if loaded.Sections[0].ID != "agent" || len(loaded.Sections[0].Papers) != 2 {
		t.Errorf("unexpected first section: %+v", loaded.Sections[0])
	}
	if loaded.Sections[0].Papers[0].Authors[0] != "Jane Doe" {
		t.Error("paper fields not preserved through storage")
	}
}

// TestPaperDBSaveReplacesExistingRun verifies re-running a day overwrites it.
func TestPaperDBSaveReplacesExistingRun(t *testing.T) {
	t.Parallel()

	pdb, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = pdb.Close() }()

	ctx := context.Background()
	date := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)

	if err := pdb.SaveReport(ctx, testReport(date)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	smaller := model.NewDailyReport(date, []string{"cs.LG"})
	smaller.GroupBySections([]model.Paper{{ID: "2506.00009", Classifiers: []string{"survey"}}})
	if err := pdb.SaveReport(ctx, smaller); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := pdb.LoadReport(ctx, date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.TotalPapers() != 1 {
		t.Errorf("expected replaced run with 1 paper, got %d", loaded.TotalPapers())
	}
}

// TestPaperDBLoadMissingRun verifies the not-found error path.
func TestPaperDBLoadMissingRun(t *testing.T) {
	t.Parallel()

	pdb, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = pdb.Close() }()

	_, err = pdb.LoadReport(context.Background(), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	if !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

// TestPaperDBListDates verifies ordering and the latest-date helper.
func TestPaperDBListDates(t *testing.T) {
	t.Parallel()

	pdb, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = pdb.Close() }()

	ctx := context.Background()

	t.Run("empty database has no latest date", func(t *testing.T) {
		if _, err := pdb.LatestDate(ctx); !errors.Is(err, ErrRunNotFound) {
			t.Errorf("expected ErrRunNotFound, got %v", err)
		}
	})

	t.Run("dates come back newest first", func(t *testing.T) {
		older := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
		newer := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
		if err := pdb.SaveReport(ctx, testReport(older)); err != nil {
			t.Fatal(err)
		}
		if err := pdb.SaveReport(ctx, testReport(newer)); err != nil {
			t.Fatal(err)
		}

		dates, err := pdb.ListDates(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(dates) != 2 || !dates[0].Equal(newer) {
			t.Errorf("unexpected dates: %v", dates)
		}

		latest, err := pdb.LatestDate(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !latest.Equal(newer) {
			t.Errorf("expected latest %v, got %v", newer, latest)
		}
	})
}
