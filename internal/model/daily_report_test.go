package model

import (
	"testing"
	"time"
)

// TestSectionID verifies the classifier-to-identifier conversion.
func TestSectionID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single word", "survey", "survey"},
		{"multi word", "large language model", "large-language-model"},
		{"mixed case with padding", "  Image Generation ", "image-generation"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SectionID(tt.in); got != tt.want {
				t.Errorf("SectionID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestDailyReportGroupBySections verifies classifier grouping behavior.
func TestDailyReportGroupBySections(t *testing.T) {
	t.Parallel()

	t.Run("groups by primary classifier preserving order", func(t *testing.T) {
		t.Parallel()

		r := NewDailyReport(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), []string{"cs.LG"})
		r.GroupBySections([]Paper{
			{ID: "a", Classifiers: []string{"agent"}},
			{ID: "b", Classifiers: []string{"survey"}},
			{ID: "c", Classifiers: []string{"agent"}},
		})

		if len(r.Sections) != 2 {
			t.Fatalf("expected 2 sections, got %d", len(r.Sections))
		}
		if r.Sections[0].ID != "agent" || r.Sections[1].ID != "survey" {
			t.Errorf("unexpected section order: %q, %q", r.Sections[0].ID, r.Sections[1].ID)
		}
		if len(r.Sections[0].Papers) != 2 {
			t.Errorf("expected 2 papers in agent section, got %d", len(r.Sections[0].Papers))
		}
		if r.Sections[0].Papers[0].ID != "a" || r.Sections[0].Papers[1].ID != "c" {
			t.Error("paper order within section not preserved")
		}
	})

	t.Run("unclassified papers land in others", func(t *testing.T) {
		t.Parallel()

		r := NewDailyReport(time.Now(), nil)
		r.GroupBySections([]Paper{{ID: "x"}})

		if len(r.Sections) != 1 || r.Sections[0].ID != "others" {
			t.Fatalf("expected single others section, got %+v", r.Sections)
		}
	})

	t.Run("total and lookup", func(t *testing.T) {
		t.Parallel()

		r := NewDailyReport(time.Now(), nil)
		r.GroupBySections([]Paper{
			{ID: "a", Classifiers: []string{"agent"}},
			{ID: "b", Classifiers: []string{"survey"}},
		})

		if r.TotalPapers() != 2 {
			t.Errorf("expected 2 total papers, got %d", r.TotalPapers())
		}
		if s := r.Section("survey"); s == nil || s.Name != "survey" {
			t.Errorf("expected survey section, got %+v", s)
		}
		if s := r.Section("missing"); s != nil {
			t.Errorf("expected nil for missing section, got %+v", s)
		}
	})
}
