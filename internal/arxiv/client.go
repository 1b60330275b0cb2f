package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/MaoSong2022/arxiv-daily/internal/model"
)

// DefaultBaseURL is the arXiv API query endpoint.
const DefaultBaseURL = "https://export.arxiv.org/api/query"

// userAgent identifies arxiv-daily in API requests. arXiv asks clients
// to send a descriptive User-Agent.
const userAgent = "arxiv-daily/1.0 (+https://github.com/MaoSong2022/arxiv-daily)"

// Client queries the arXiv API for recently announced papers.
type Client struct {
	// httpClient performs the API requests.
	httpClient *http.Client

	// baseURL is the API endpoint, overridable for tests.
	baseURL string

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithBaseURL overrides the API endpoint. Used by tests to point the
// client at a local server.
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

// NewClient creates an arXiv API client.
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

// QueryCategory retrieves the papers announced in the given window for one
// arXiv category. Results arrive sorted by last-updated descending, so the
// walk stops as soon as it passes the window start.
//
// Papers are skipped when:
//   - they were first published before the window (the update is a revision
//     of an older paper, not a new announcement)
//   - their primary category is not one of the queried categories (the
//     paper is only cross-listed here and would be double counted)
func (c *Client) QueryCategory(ctx context.Context, category string, window Window, maxResults int, queried []string) ([]model.Paper, error) {
	q := url.Values{}
	q.Set("search_query", "cat:"+category)
	q.Set("max_results", fmt.Sprintf("%d", maxResults))
	q.Set("sortBy", "lastUpdatedDate")
	q.Set("sortOrder", "descending")

	feed, err := c.fetch(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query category %s: %w", category, err)
	}

	var papers []model.Paper
	for _, entry := range feed.Entries {
		p := parseEntry(entry)

		// Results are sorted by update time descending; everything past
		// the window start belongs to an earlier announcement day.
		if !p.Updated.After(window.Start) {
			break
		}

		if !p.Published.After(window.Start) {
			c.logger.Debug("skipping revised paper", "id", p.ID, "published", p.Published)
			continue
		}

		if !slices.Contains(queried, p.PrimaryCategory) {
			c.logger.Debug("skipping cross-listed paper",
				"id", p.ID,
				"primary_category", p.PrimaryCategory,
			)
			continue
		}

		papers = append(papers, p)
	}

	c.logger.Info("retrieved papers", "category", category, "count", len(papers))
	return papers, nil
}

// QueryByID retrieves a single paper by its arXiv identifier.
func (c *Client) QueryByID(ctx context.Context, id string) (*model.Paper, error) {
	q := url.Values{}
	q.Set("id_list", id)
	q.Set("max_results", "1")

	feed, err := c.fetch(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query paper %s: %w", id, err)
	}
	if len(feed.Entries) == 0 {
		return nil, fmt.Errorf("paper %s: %w", id, ErrNotFound)
	}

	p := parseEntry(feed.Entries[0])
	return &p, nil
}

// fetch performs one API request and decodes the Atom feed.
func (c *Client) fetch(ctx context.Context, query url.Values) (*atomFeed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("perform request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var feed atomFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("parse atom feed: %w", err)
	}
	return &feed, nil
}
