package arxiv

import "errors"

// ErrNotFound is returned when a paper lookup by ID yields no entry.
var ErrNotFound = errors.New("paper not found")
