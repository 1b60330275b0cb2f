package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoCategories is returned when no arXiv category is configured.
	ErrNoCategories = errors.New("no categories specified: provide at least one arXiv category (e.g., cs.LG)")

	// ErrInvalidMaxResults is returned when the per-category result cap
	// is not positive.
	ErrInvalidMaxResults = errors.New("invalid max results: must be positive")

	// ErrInvalidTimeout is returned when the HTTP timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidWorkerCount is returned when the summarization worker
	// count is not positive.
	ErrInvalidWorkerCount = errors.New("invalid worker count: must be positive")

	// ErrNoModel is returned when summarization is enabled but no chat
	// model name is configured.
	ErrNoModel = errors.New("no model specified: set --model or skip summarization with --skip-summarize")

	// ErrNoAnnouncement is returned for dates without an arXiv announcement
	// (weekends); there is nothing to retrieve on those days.
	ErrNoAnnouncement = errors.New("arxiv publishes no announcements on Saturday or Sunday")
)
