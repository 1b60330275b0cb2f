// Package server serves the interactive review page for a daily report.
// The page is rendered from the review state; every control posts back
// to the server, which mutates the state and re-renders.
package server
