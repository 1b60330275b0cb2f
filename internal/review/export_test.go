package review

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/MaoSong2022/arxiv-daily/internal/model"
)

// TestStateCollectSelected verifies collection of visible papers.
func TestStateCollectSelected(t *testing.T) {
	t.Parallel()

	t.Run("only visible papers are collected, in order", func(t *testing.T) {
		t.Parallel()

		s := NewState(testReport(), nil)
		s.ToggleVisibility("2506.00003")

		records := s.CollectSelected()
		if len(records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(records))
		}
		if records[0].Title != "Paper A" || records[1].Title != "Paper B" {
			t.Errorf("unexpected records: %q, %q", records[0].Title, records[1].Title)
		}
	})

	t.Run("authors line label and separators are stripped", func(t *testing.T) {
		t.Parallel()

		s := NewState(testReport(), nil)
		records := s.CollectSelected()

		want := []string{"Jane Doe", "J. Smith"}
		if !reflect.DeepEqual(records[0].Authors, want) {
			t.Errorf("unexpected authors: %v", records[0].Authors)
		}
	})

	t.Run("blank keyword fields are dropped", func(t *testing.T) {
		t.Parallel()

		s := NewState(testReport(), nil)
		s.AddKeywordField("2506.00001")
		s.AddKeywordField("2506.00001")
		s.UpdateKeywordField("2506.00001", 1, "   ")
		s.UpdateKeywordField("2506.00001", 2, "Planning")

		records := s.CollectSelected()
		want := []string{"Agents", "Planning"}
		if !reflect.DeepEqual(records[0].Keywords, want) {
			t.Errorf("unexpected keywords: %v", records[0].Keywords)
		}
	})

	t.Run("collection does not change the state", func(t *testing.T) {
		t.Parallel()

		s := NewState(testReport(), nil)
		s.ToggleVisibility("2506.00002")

		first := s.CollectSelected()
		second := s.CollectSelected()
		if !reflect.DeepEqual(first, second) {
			t.Error("repeated collection produced different records")
		}
	})

	t.Run("committed edits are collected, drafts are not", func(t *testing.T) {
		t.Parallel()

		s := NewState(testReport(), nil)
		s.ToggleTLDREdit("2506.00001")
		s.SetTLDRDraft("2506.00001", "draft only")

		records := s.CollectSelected()
		if records[0].TLDR != "Agents do things." {
			t.Errorf("uncommitted draft leaked into collection: %q", records[0].TLDR)
		}

		s.ToggleTLDREdit("2506.00001")
		records = s.CollectSelected()
		if records[0].TLDR != "draft only" {
			t.Errorf("committed text not collected: %q", records[0].TLDR)
		}
	})
}

// TestStateExportJSON verifies the JSON export document.
func TestStateExportJSON(t *testing.T) {
	t.Parallel()

	t.Run("exports visible papers as a JSON array", func(t *testing.T) {
		t.Parallel()

		s := NewState(testReport(), nil)
		s.ToggleVisibility("2506.00002")

		var buf bytes.Buffer
		if err := s.ExportJSON(&buf); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var records []model.ExportRecord
		if err := json.Unmarshal(buf.Bytes(), &records); err != nil {
			t.Fatalf("export is not valid JSON: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(records))
		}
		if records[0].ID != "2506.00001" || records[0].PDFURL != "https://arxiv.org/pdf/2506.00001" {
			t.Errorf("unexpected first record: %+v", records[0])
		}
	})

	t.Run("nothing visible yields ErrNothingSelected", func(t *testing.T) {
		t.Parallel()

		s := NewState(testReport(), nil)
		for _, id := range []string{"2506.00001", "2506.00002", "2506.00003"} {
			s.ToggleVisibility(id)
		}

		var buf bytes.Buffer
		err := s.ExportJSON(&buf)
		if !errors.Is(err, ErrNothingSelected) {
			t.Errorf("expected ErrNothingSelected, got %v", err)
		}
		if buf.Len() != 0 {
			t.Error("failed export must not write output")
		}
	})
}

// TestStateExportMarkdown verifies the Markdown export document.
func TestStateExportMarkdown(t *testing.T) {
	t.Parallel()

	t.Run("papers are separated and fully labeled", func(t *testing.T) {
		t.Parallel()

		s := NewState(testReport(), nil)

		var buf bytes.Buffer
		if err := s.ExportMarkdown(&buf); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := buf.String()

		for _, want := range []string{
			"## Paper A",
			"**Authors:** Jane Doe, J. Smith",
			"**Keywords:** Agents",
			"**TL;DR:** Agents do things.",
			"### Abstract",
			"## Paper B",
			"## Paper C",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("export missing %q", want)
			}
		}
		if strings.Count(out, "---") != 2 {
			t.Errorf("expected 2 separators between 3 papers, got %d", strings.Count(out, "---"))
		}
	})

	t.Run("empty values render no labels or subsections", func(t *testing.T) {
		t.Parallel()

		s := NewState(testReport(), nil)
		s.ToggleVisibility("2506.00001")
		s.ToggleVisibility("2506.00003")

		// Paper B has no authors, keywords, TL;DR or comments.
		var buf bytes.Buffer
		if err := s.ExportMarkdown(&buf); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := buf.String()

		for _, unwanted := range []string{"**Authors:**", "**Keywords:**", "**TL;DR:**", "### Comments"} {
			if strings.Contains(out, unwanted) {
				t.Errorf("export contains empty block %q:\n%s", unwanted, out)
			}
		}
		if !strings.Contains(out, "### Abstract") {
			t.Error("abstract subsection missing")
		}
	})

	t.Run("nothing visible yields ErrNothingSelected", func(t *testing.T) {
		t.Parallel()

		s := NewState(testReport(), nil)
		for _, id := range []string{"2506.00001", "2506.00002", "2506.00003"} {
			s.ToggleVisibility(id)
		}

		var buf bytes.Buffer
		if !errors.Is(s.ExportMarkdown(&buf), ErrNothingSelected) {
			t.Error("expected ErrNothingSelected")
		}
	})
}
