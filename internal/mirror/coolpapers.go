// Package mirror retrieves paper listings from the papers.cool mirror.
//
// The mirror serves rendered HTML rather than a structured API, so this
// package scrapes the listing page. It exists as a fallback for days when
// the arXiv API is unreachable or rate limited; the resulting papers carry
// less metadata (no DOI, comments, or journal reference) but are enough
// for summarization and report generation.
package mirror

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/MaoSong2022/arxiv-daily/internal/model"
)

// DefaultBaseURL is the papers.cool arXiv listing root.
const DefaultBaseURL = "https://papers.cool/arxiv"

// showCount asks the mirror for up to this many papers per page.
// A single announcement day never exceeds it for one category.
const showCount = 1000

// Client scrapes paper listings from the mirror.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithBaseURL overrides the mirror URL. Used by tests.
func WithBaseURL(u string) Option {
	return func(cl *Client) {
		cl.baseURL = u
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cl *Client) {
		cl.logger = logger
	}
}

// NewClient creates a mirror client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    DefaultBaseURL,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// QueryCategory retrieves the papers listed for one category on the given
// date. The mirror already groups by announcement day, so no window
// filtering is needed here.
func (c *Client) QueryCategory(ctx context.Context, category string, date time.Time) ([]model.Paper, error) {
	url := fmt.Sprintf("%s/%s?date=%s&show=%d", c.baseURL, category, date.Format("2006-01-02"), showCount)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch mirror listing: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse mirror listing: %w", err)
	}

	papers := c.parseListing(doc, category)
	c.logger.Info("retrieved papers from mirror", "category", category, "count", len(papers))
	return papers, nil
}

// parseListing extracts paper entries from the listing document.
func (c *Client) parseListing(doc *goquery.Document, category string) []model.Paper {
	var papers []model.Paper

	doc.Find("div.panel.paper").Each(func(_ int, entry *goquery.Selection) {
		id, ok := entry.Attr("id")
		if !ok || id == "" {
			return
		}

		p := model.Paper{
			ID:              id,
			URL:             "https://arxiv.org/abs/" + id,
			PDFURL:          "https://arxiv.org/pdf/" + id,
			Title:           strings.TrimSpace(entry.Find("a.title-link").First().Text()),
			Abstract:        strings.TrimSpace(entry.Find("p.summary").First().Text()),
			PrimaryCategory: category,
		}

		entry.Find("p.authors a.author").Each(func(_ int, a *goquery.Selection) {
			if name := strings.TrimSpace(a.Text()); name != "" {
				p.Authors = append(p.Authors, name)
			}
		})

		entry.Find("p.subjects a.subject-1").Each(func(_ int, s *goquery.Selection) {
			if subject := strings.TrimSpace(s.Text()); subject != "" {
				p.Categories = append(p.Categories, subject)
			}
		})
		if len(p.Categories) == 0 {
			p.Categories = []string{category}
		}

		// The listing shows "Publish: <date>"; the mirror gives no
		// separate update time, so both fields share it.
		if dateText := strings.TrimSpace(entry.Find("p.date").First().Text()); dateText != "" {
			if i := strings.Index(dateText, "Publish"); i >= 0 {
				raw := strings.Trim(strings.TrimSpace(dateText[i+len("Publish"):]), ": ")
				if t, err := time.Parse("2006-01-02", raw); err == nil {
					p.Published = t
					p.Updated = t
				}
			}
		}

		papers = append(papers, p)
	})

	return papers
}
