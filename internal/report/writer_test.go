package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MaoSong2022/arxiv-daily/internal/model"
)

// digestReport builds a report spanning two topic headings plus a
// filtered section.
func digestReport() *model.DailyReport {
	r := model.NewDailyReport(time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC), []string{"cs.LG", "cs.AI"})
	r.GroupBySections([]model.Paper{
		{
			ID:          "2506.00001",
			URL:         "https://arxiv.org/abs/2506.00001",
			Title:       "Planning Agents",
			Authors:     []string{"Jane Doe"},
			TLDR:        "Agents that plan.",
			Keywords:    []string{"Agents", "Planning"},
			Classifiers: []string{"agent"},
		},
		{
			ID:          "2506.00002",
			URL:         "https://arxiv.org/abs/2506.00002",
			Title:       "A Survey of Things",
			Classifiers: []string{"survey"},
		},
		{
			ID:          "2506.00003",
			Title:       "Splatting Everything",
			Classifiers: []string{"gauss splatting"},
		},
	})
	return r
}

// TestJSONWriter verifies compact and pretty JSON output.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("round-trips the report", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		n, err := w.Write(digestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != buf.Len() {
			t.Errorf("reported %d bytes, wrote %d", n, buf.Len())
		}

		var got model.DailyReport
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if got.TotalPapers() != 3 {
			t.Errorf("expected 3 papers, got %d", got.TotalPapers())
		}
	})

	t.Run("pretty print indents the output", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithPrettyPrint())

		if _, err := w.Write(digestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  \"date\"") {
			t.Error("expected indented output")
		}
	})
}

// TestMarkdownWriter verifies the digest layout and filtering.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewMarkdownWriter(&buf)

	if _, err := w.Write(digestReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# arXiv Daily Digest: 2025-06-04",
		"## Agent",
		"### Agent (1)",
		"[Planning Agents](https://arxiv.org/abs/2506.00001)",
		"**Authors:** Jane Doe",
		"**TL;DR:** Agents that plan.",
		"**Keywords:** Agents, Planning",
		"## Survey",
		"[A Survey of Things](https://arxiv.org/abs/2506.00002)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("digest missing %q", want)
		}
	}

	if strings.Contains(out, "Splatting Everything") {
		t.Error("filtered classifier leaked into the digest")
	}
	if strings.Contains(out, "**TL;DR:** \n") {
		t.Error("empty summary line rendered")
	}
}

// TestMultiWriter verifies fan-out and error propagation.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to every writer", func(t *testing.T) {
		t.Parallel()

		var jsonBuf, mdBuf bytes.Buffer
		mw := NewMultiWriter(NewJSONWriter(&jsonBuf), NewMarkdownWriter(&mdBuf))

		if _, err := mw.Write(digestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if jsonBuf.Len() == 0 || mdBuf.Len() == 0 {
			t.Error("expected output in both writers")
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		mw := NewMultiWriter(NewJSONWriter(failWriter{}), NewMarkdownWriter(&buf))

		if _, err := mw.Write(digestReport()); err == nil {
			t.Fatal("expected write error")
		}
		if buf.Len() != 0 {
			t.Error("later writer ran after an error")
		}
	})
}

// failWriter always fails, for error-path tests.
type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}
