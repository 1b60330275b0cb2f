package model

import (
	"strings"
	"time"
)

// DailyReport is the result of one daily pipeline run.
// It holds the retrieved papers grouped into classifier sections,
// in the order the sections should appear in reports.
type DailyReport struct {
	// Date is the announcement date the run covered.
	Date time.Time `json:"date"`

	// GeneratedAt is when the pipeline produced this report.
	GeneratedAt time.Time `json:"generated_at"`

	// QueriedCategories lists the arXiv categories that were queried.
	QueriedCategories []string `json:"queried_categories"`

	// Sections groups papers by primary classifier in display order.
	Sections []Section `json:"sections"`

	// Error contains the run error, if the pipeline failed partway.
	// Stored as text so the report remains serializable.
	Error string `json:"error,omitempty"`
}

// Section is a named grouping of papers under one classifier.
type Section struct {
	// ID is the URL-safe section identifier (lowercase, hyphenated).
	ID string `json:"id"`

	// Name is the human-readable section name.
	Name string `json:"name"`

	// Papers in display order.
	Papers []Paper `json:"papers"`
}

// SectionID converts a classifier name into its URL-safe identifier.
// "large language model" becomes "large-language-model".
func SectionID(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

// NewDailyReport creates an empty report for the given date.
func NewDailyReport(date time.Time, categories []string) *DailyReport {
	return &DailyReport{
		Date:              date,
		GeneratedAt:       time.Now(),
		QueriedCategories: categories,
	}
}

// TotalPapers returns the number of papers across all sections.
func (r *DailyReport) TotalPapers() int {
	total := 0
	for _, s := range r.Sections {
		total += len(s.Papers)
	}
	return total
}

// Papers returns all papers in section order.
func (r *DailyReport) Papers() []Paper {
	papers := make([]Paper, 0, r.TotalPapers())
	for _, s := range r.Sections {
		papers = append(papers, s.Papers...)
	}
	return papers
}

// Section returns the section with the given ID, or nil if absent.
func (r *DailyReport) Section(id string) *Section {
	for i := range r.Sections {
		if r.Sections[i].ID == id {
			return &r.Sections[i]
		}
	}
	return nil
}

// GroupBySections builds the report sections from a flat paper list.
// Papers are grouped by primary classifier; the section order follows
// the order of first appearance, and paper order within a section
// follows the input order.
func (r *DailyReport) GroupBySections(papers []Paper) {
	index := make(map[string]int)
	r.Sections = r.Sections[:0]

	for _, p := range papers {
		name := p.PrimaryClassifier()
		id := SectionID(name)
		i, ok := index[id]
		if !ok {
			i = len(r.Sections)
			index[id] = i
			r.Sections = append(r.Sections, Section{ID: id, Name: name})
		}
		r.Sections[i].Papers = append(r.Sections[i].Papers, p)
	}
}
