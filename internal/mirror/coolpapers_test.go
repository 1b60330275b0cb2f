package mirror

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// listingHTML is a trimmed-down papers.cool listing page with two entries.
const listingHTML = `<html><body>
<div class="panel paper" id="2506.00001">
  <a class="title-link" href="/arxiv/2506.00001"> Attention Is Not Enough </a>
  <p class="authors">
    <a class="author">Jane Doe</a>
    <a class="author">J. Smith</a>
  </p>
  <p class="summary"> We revisit attention. </p>
  <p class="subjects"><a class="subject-1">cs.LG</a><a class="subject-1">cs.AI</a></p>
  <p class="date">Publish: 2025-06-03</p>
</div>
<div class="panel paper" id="2506.00002">
  <a class="title-link">Diffusion for Everything</a>
  <p class="summary">Diffusion models everywhere.</p>
</div>
<div class="panel paper">
  <a class="title-link">No ID, Should Be Skipped</a>
</div>
</body></html>`

// TestClientQueryCategory verifies listing extraction from mirror HTML.
func TestClientQueryCategory(t *testing.T) {
	t.Parallel()

	t.Run("parses listed papers", func(t *testing.T) {
		t.Parallel()

		var gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path + "?" + r.URL.RawQuery
			fmt.Fprint(w, listingHTML)
		}))
		defer srv.Close()

		c := NewClient(WithBaseURL(srv.URL))
		date := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
		papers, err := c.QueryCategory(context.Background(), "cs.LG", date)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if gotPath != "/cs.LG?date=2025-06-04&show=1000" {
			t.Errorf("unexpected request path: %q", gotPath)
		}
		if len(papers) != 2 {
			t.Fatalf("expected 2 papers, got %d", len(papers))
		}

		first := papers[0]
		if first.ID != "2506.00001" {
			t.Errorf("unexpected id: %q", first.ID)
		}
		if first.Title != "Attention Is Not Enough" {
			t.Errorf("unexpected title: %q", first.Title)
		}
		if len(first.Authors) != 2 || first.Authors[1] != "J. Smith" {
			t.Errorf("unexpected authors: %v", first.Authors)
		}
		if first.Abstract != "We revisit attention." {
			t.Errorf("unexpected abstract: %q", first.Abstract)
		}
		if len(first.Categories) != 2 {
			t.Errorf("unexpected categories: %v", first.Categories)
		}
		if !first.Published.Equal(time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected published date: %v", first.Published)
		}
		if first.PDFURL != "https://arxiv.org/pdf/2506.00001" {
			t.Errorf("unexpected pdf url: %q", first.PDFURL)
		}
	})

	t.Run("entry without subjects falls back to queried category", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, listingHTML)
		}))
		defer srv.Close()

		c := NewClient(WithBaseURL(srv.URL))
		papers, err := c.QueryCategory(context.Background(), "cs.CV", time.Now())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(papers[1].Categories) != 1 || papers[1].Categories[0] != "cs.CV" {
			t.Errorf("expected fallback category, got %v", papers[1].Categories)
		}
	})

	t.Run("server error is surfaced", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		c := NewClient(WithBaseURL(srv.URL))
		if _, err := c.QueryCategory(context.Background(), "cs.LG", time.Now()); err == nil {
			t.Error("expected error for 503 response")
		}
	})
}
