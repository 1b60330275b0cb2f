package arxiv

import (
	"regexp"
	"strings"
	"time"

	"github.com/MaoSong2022/arxiv-daily/internal/model"
)

// atomFeed is the root of the arXiv API Atom response.
type atomFeed struct {
	TotalResults int         `xml:"totalResults"`
	Entries      []atomEntry `xml:"entry"`
}

// atomEntry is a single paper entry in the Atom response.
// The arxiv.org/schemas/atom namespace carries the arXiv-specific fields.
type atomEntry struct {
	ID              string         `xml:"id"`
	Published       time.Time      `xml:"published"`
	Updated         time.Time      `xml:"updated"`
	Title           string         `xml:"title"`
	Summary         string         `xml:"summary"`
	Authors         []atomAuthor   `xml:"author"`
	Links           []atomLink     `xml:"link"`
	Categories      []atomCategory `xml:"category"`
	PrimaryCategory atomCategory   `xml:"http://arxiv.org/schemas/atom primary_category"`
	Comment         string         `xml:"http://arxiv.org/schemas/atom comment"`
	JournalRef      string         `xml:"http://arxiv.org/schemas/atom journal_ref"`
	DOI             string         `xml:"http://arxiv.org/schemas/atom doi"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomLink struct {
	Href  string `xml:"href,attr"`
	Title string `xml:"title,attr"`
	Rel   string `xml:"rel,attr"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}

// whitespaceRegex collapses the newline-wrapped titles and abstracts the
// API returns into single-line text.
var whitespaceRegex = regexp.MustCompile(`\s+`)

// cleanText trims an Atom text field and collapses internal whitespace.
func cleanText(s string) string {
	return whitespaceRegex.ReplaceAllString(strings.TrimSpace(s), " ")
}

// shortID extracts the short arXiv identifier from the entry ID URL.
// "http://arxiv.org/abs/2301.00001v2" becomes "2301.00001v2".
func shortID(entryID string) string {
	parts := strings.Split(entryID, "/abs/")
	if len(parts) < 2 {
		return entryID
	}
	return parts[1]
}

// parseEntry converts an Atom entry into a model.Paper.
func parseEntry(e atomEntry) model.Paper {
	p := model.Paper{
		ID:              shortID(e.ID),
		URL:             e.ID,
		Updated:         e.Updated,
		Published:       e.Published,
		Title:           cleanText(e.Title),
		Abstract:        cleanText(e.Summary),
		DOI:             e.DOI,
		Comments:        cleanText(e.Comment),
		JournalRef:      e.JournalRef,
		PrimaryCategory: e.PrimaryCategory.Term,
	}

	for _, a := range e.Authors {
		p.Authors = append(p.Authors, strings.TrimSpace(a.Name))
	}
	for _, c := range e.Categories {
		p.Categories = append(p.Categories, c.Term)
	}
	for _, l := range e.Links {
		if l.Title == "pdf" {
			p.PDFURL = l.Href
			break
		}
	}
	// Older entries carry no explicit pdf link; derive it from the abs URL.
	if p.PDFURL == "" && p.ID != "" {
		p.PDFURL = "https://arxiv.org/pdf/" + p.ID
	}
	return p
}
