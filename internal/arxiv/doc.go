// Package arxiv retrieves paper metadata from the arXiv API.
//
// The client walks one category at a time, sorted by last-updated
// descending, and keeps only the papers that belong to the announcement
// window of the requested run date. The window computation follows the
// official announcement schedule and therefore depends on the weekday.
package arxiv
