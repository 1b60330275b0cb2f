package report

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/MaoSong2022/arxiv-daily/internal/config"
	"github.com/MaoSong2022/arxiv-daily/internal/model"
)

//go:embed templates/report.html
var htmlAssets embed.FS

// htmlTemplate is parsed once; the template is embedded, so a parse
// failure is a programming error, not a runtime condition.
var htmlTemplate = template.Must(template.New("report").ParseFS(htmlAssets, "templates/report.html"))

// HTMLWriter outputs the report as a self-contained HTML page: a
// sidebar with per-section counts and one card per paper. The page is
// a static snapshot for sharing or archiving; the editable version of
// the same report is what `arxiv-daily serve` serves.
type HTMLWriter struct {
	baseWriter

	// titler renders classifier names as section headings.
	titler cases.Caser
}

// NewHTMLWriter creates an HTMLWriter that outputs to the given writer.
func NewHTMLWriter(output io.Writer) *HTMLWriter {
	return &HTMLWriter{
		baseWriter: newBaseWriter(output),
		titler:     cases.Title(language.English),
	}
}

// htmlPage is the template payload.
type htmlPage struct {
	Date        string
	Generated   string
	Categories  string
	TotalPapers int
	Sections    []htmlSection
}

// htmlSection is one classifier section on the page.
type htmlSection struct {
	ID     string
	Title  string
	Papers []htmlPaper
}

// htmlPaper is one paper card on the page.
type htmlPaper struct {
	ID       string
	Title    string
	URL      string
	PDFURL   string
	Authors  string
	TLDR     string
	Keywords string
	Abstract string
	Comments string
}

// Write outputs the report as an HTML page.
// Empty sections and the sections nobody reviews are skipped, the same
// rule the review server applies.
func (w *HTMLWriter) Write(report *model.DailyReport) (int, error) {
	boring := config.BoringSections()

	page := htmlPage{
		Date:        report.Date.Format("2006-01-02"),
		Generated:   report.GeneratedAt.Format("2006-01-02 15:04:05 MST"),
		Categories:  strings.Join(report.QueriedCategories, ", "),
		TotalPapers: report.TotalPapers(),
	}
	for _, section := range report.Sections {
		if len(section.Papers) == 0 || slices.Contains(boring, section.Name) {
			continue
		}
		hs := htmlSection{
			ID:    section.ID,
			Title: w.titler.String(section.Name),
		}
		for i := range section.Papers {
			hs.Papers = append(hs.Papers, newHTMLPaper(&section.Papers[i]))
		}
		page.Sections = append(page.Sections, hs)
	}

	var buf bytes.Buffer
	if err := htmlTemplate.ExecuteTemplate(&buf, "report", page); err != nil {
		return 0, err
	}
	return w.output.Write(buf.Bytes())
}

// newHTMLPaper flattens a paper into the card fields the page shows.
func newHTMLPaper(p *model.Paper) htmlPaper {
	return htmlPaper{
		ID:       p.ID,
		Title:    p.Title,
		URL:      p.URL,
		PDFURL:   p.PDFURL,
		Authors:  p.AuthorsLine(),
		TLDR:     p.TLDR,
		Keywords: strings.Join(p.Keywords, ", "),
		Abstract: p.Abstract,
		Comments: p.Comments,
	}
}
