package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These match the behavior of the original daily tracking runs and can be
// overridden via CLI flags or the .arxiv-daily configuration file.
const (
	// DefaultMaxResults limits how many papers are requested per category.
	// 500 comfortably covers a single announcement day for the default
	// categories; larger values only slow the API walk down.
	DefaultMaxResults = 500

	// DefaultTimeout is the HTTP timeout for arXiv API and mirror requests.
	// The export API can be slow under load, so 30 seconds is generous
	// without letting a stuck request block the whole run.
	DefaultTimeout = 30 * time.Second

	// DefaultSummarizeWorkers is the number of concurrent LLM summarization
	// requests. Summarization dominates run time, but most providers rate
	// limit aggressively, so the default stays conservative.
	DefaultSummarizeWorkers = 4

	// DefaultModel is the chat model used for summarization.
	DefaultModel = "command-r"

	// DefaultServeAddr is the listen address for the review server.
	DefaultServeAddr = ":8090"

	// AppName is the application name used for XDG directory paths.
	AppName = "arxiv-daily"

	// DefaultOutputDir is where reports are written when no --output is given.
	DefaultOutputDir = "output"
)

// DefaultCategories are the arXiv categories queried each day.
func DefaultCategories() []string {
	return []string{"cs.LG", "cs.AI", "cs.CV", "cs.CL"}
}

// Config holds all configuration options for arxiv-daily.
// This struct is populated from CLI flags and the optional configuration
// file and passed through the application via dependency injection rather
// than global state.
type Config struct {
	// Categories are the arXiv categories to query.
	Categories []string

	// Date is the announcement date the run covers.
	Date time.Time

	// MaxResults is the per-category cap on API results.
	MaxResults int

	// Timeout is the HTTP timeout for each retrieval request.
	Timeout time.Duration

	// UseMirror retrieves listings from the papers.cool mirror instead of
	// the arXiv API. Useful when the API is unreachable or rate limited.
	UseMirror bool

	// SkipSummarize disables the LLM summarization step.
	// Papers are still retrieved, deduplicated, stored, and rendered,
	// just without TL;DR, keywords, or classifier sections.
	SkipSummarize bool

	// Model is the chat model name for summarization.
	Model string

	// SummarizeWorkers is the number of concurrent summarization requests.
	SummarizeWorkers int

	// OutputDir is the directory reports are written into.
	OutputDir string

	// DBDir is the directory for the SQLite database.
	// When empty, the XDG data directory is used.
	DBDir string

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the explicit path to the configuration file.
	// If empty, the tool searches for .arxiv-daily in the current
	// directory and then in the user's home directory.
	ConfigFilePath string

	// File holds settings loaded from the configuration file.
	File *File
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (timeout, worker count,
// category list). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Categories:       DefaultCategories(),
		MaxResults:       DefaultMaxResults,
		Timeout:          DefaultTimeout,
		Model:            DefaultModel,
		SummarizeWorkers: DefaultSummarizeWorkers,
		OutputDir:        DefaultOutputDir,
	}
}

// XDGDataDir returns the XDG data directory for arxiv-daily.
// On Linux: ~/.local/share/arxiv-daily
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for arxiv-daily.
// On Linux: ~/.config/arxiv-daily
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// We chose to return the first error found rather than collecting all
// errors because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if len(c.Categories) == 0 {
		return ErrNoCategories
	}
	if c.MaxResults <= 0 {
		return ErrInvalidMaxResults
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.SummarizeWorkers <= 0 {
		return ErrInvalidWorkerCount
	}
	if !c.SkipSummarize && c.Model == "" {
		return ErrNoModel
	}
	return nil
}
