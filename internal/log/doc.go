// Package log provides logging utilities for arxiv-daily.
// It wraps log/slog handlers to keep oversized attribute values
// (paper abstracts, LLM prompts and responses) from flooding log output.
package log
