// Package model defines the core data structures used throughout arxiv-daily.
//
// This package contains the following main types:
//   - Paper: Metadata for a single arXiv paper, including LLM-added fields
//   - DailyReport: One day's retrieved papers grouped into sections
//   - Section: A named classifier grouping of papers
//   - ExportRecord: The flat shape produced for a paper at export time
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (arxiv, summarize, report, review, database)
// need to use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
