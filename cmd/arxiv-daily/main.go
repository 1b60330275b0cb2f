// Package main provides the entry point for the arxiv-daily CLI.
//
// arxiv-daily tracks one day of arXiv announcements: it fetches the
// papers announced in the configured categories, annotates them with an
// LLM, and renders reports for reading and interactive review.
//
// Usage:
//
//	arxiv-daily fetch
//	arxiv-daily report --date 2025-06-04
//	arxiv-daily serve
//
// See --help for all available options.
package main

// main is the entry point for arxiv-daily.
func main() {
	Execute()
}
