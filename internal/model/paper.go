package model

import (
	"strings"
	"time"
)

// Paper is the metadata collected for a single arXiv paper.
// It contains everything retrieved from the arXiv API (or the mirror)
// plus the fields added by the summarization step.
//
// Design decision: We use a single flat struct rather than separating
// "retrieved" and "summarized" fields into sub-structs because the paper
// flows through the pipeline as one unit and is serialized as one JSON
// object, matching the stored daily snapshot format.
type Paper struct {
	// ID is the short arXiv identifier (e.g., "2301.00001").
	ID string `json:"paper_id"`

	// URL is the arXiv abstract page URL.
	URL string `json:"paper_url"`

	// Updated is when the paper was last updated on arXiv.
	Updated time.Time `json:"updated"`

	// Published is when the paper was first announced.
	Published time.Time `json:"published"`

	// Title of the paper.
	Title string `json:"title"`

	// Abstract is the full abstract text.
	Abstract string `json:"abstract"`

	// DOI is the Digital Object Identifier if available.
	DOI string `json:"doi,omitempty"`

	// Authors in announcement order.
	Authors []string `json:"authors"`

	// Comments is the submitter comment (e.g., "10 pages, 3 figures").
	Comments string `json:"comments,omitempty"`

	// JournalRef is the journal reference if published.
	JournalRef string `json:"journal_ref,omitempty"`

	// PrimaryCategory is the primary arXiv category (e.g., "cs.LG").
	PrimaryCategory string `json:"primary_category"`

	// Categories lists all arXiv categories the paper was cross-listed under.
	Categories []string `json:"categories"`

	// PDFURL is the direct PDF link.
	PDFURL string `json:"pdf_url"`

	// === Fields added by the summarization step ===

	// TLDR is the one-to-three sentence LLM summary.
	TLDR string `json:"tldr,omitempty"`

	// Keywords are the LLM-suggested technical keywords.
	Keywords []string `json:"keywords,omitempty"`

	// Classifiers are the topic labels assigned by the LLM.
	// The first entry is the primary classifier used for grouping.
	Classifiers []string `json:"classifiers,omitempty"`
}

// PrimaryClassifier returns the classifier used for report grouping.
// Papers without any classifier fall back to "others" so they are still
// representable in a report, just in the catch-all section.
func (p *Paper) PrimaryClassifier() string {
	if len(p.Classifiers) == 0 {
		return "others"
	}
	return strings.ToLower(strings.TrimSpace(p.Classifiers[0]))
}

// AuthorsLine returns the authors joined with commas, the form used on
// the rendered report card.
func (p *Paper) AuthorsLine() string {
	return strings.Join(p.Authors, ", ")
}
