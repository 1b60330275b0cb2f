package model

// ExportRecord is the flat record produced for a paper at export time.
// It is constructed fresh from the review state on every export and is
// never stored; both the JSON and Markdown export paths share this shape
// so they always agree on selection and field values.
type ExportRecord struct {
	// ID is the arXiv identifier.
	ID string `json:"id"`

	// Title of the paper.
	Title string `json:"title"`

	// PDFURL is the direct PDF link.
	PDFURL string `json:"pdf_url"`

	// Authors as individual names, label prefix stripped.
	Authors []string `json:"authors"`

	// Keywords are the non-blank keyword field values in field order.
	Keywords []string `json:"keywords"`

	// Abstract is the full abstract text.
	Abstract string `json:"abstract"`

	// TLDR is the committed TL;DR view text.
	TLDR string `json:"tldr"`

	// Comments is the committed comments view text.
	Comments string `json:"comments"`
}
