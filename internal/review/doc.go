// Package review implements the interactive report controller: the
// typed state behind the rendered daily report page and the operations
// a reader performs on it, such as hiding cards, editing keywords,
// TL;DR and comments, adjusting card density, deleting categories, and
// exporting the remaining visible papers.
package review
