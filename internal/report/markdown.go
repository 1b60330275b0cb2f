package report

import (
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/MaoSong2022/arxiv-daily/internal/config"
	"github.com/MaoSong2022/arxiv-daily/internal/model"
)

// MarkdownWriter outputs the daily digest in Markdown format.
// This format is designed for reading the day's papers in one pass,
// grouped under broad topic headings.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter

	// titler renders classifier names as digest headings.
	titler cases.Caser
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		titler:     cases.Title(language.English),
	}
}

// Write outputs the daily digest in Markdown format.
// Sections whose classifier is filtered from the digest are dropped;
// the remaining sections are rolled up under their topic headings in
// order of first appearance.
func (w *MarkdownWriter) Write(report *model.DailyReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)

	filtered := config.FilteredClassifiers()
	super := config.SuperCategories()

	// Topic headings in order of first appearance, each with its
	// sections in report order.
	var headings []string
	grouped := make(map[string][]model.Section)
	for _, section := range report.Sections {
		if len(section.Papers) == 0 || slices.Contains(filtered, section.Name) {
			continue
		}
		heading, ok := super[section.Name]
		if !ok {
			heading = "Others"
		}
		if _, seen := grouped[heading]; !seen {
			headings = append(headings, heading)
		}
		grouped[heading] = append(grouped[heading], section)
	}

	for _, heading := range headings {
		md.H2(heading)
		md.PlainText("")
		for _, section := range grouped[heading] {
			w.writeSection(md, section)
		}
	}

	if len(headings) == 0 {
		md.PlainText("No papers matched the digest topics today.")
		md.PlainText("")
	}

	w.writeFooter(md)
	return len(md.String()), md.Build()
}

// writeHeader writes the digest title and run summary.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.DailyReport) {
	md.H1("arXiv Daily Digest: " + report.Date.Format("2006-01-02"))
	md.PlainText("")

	rows := [][]string{
		{"Categories", "`" + strings.Join(report.QueriedCategories, ", ") + "`"},
		{"Papers", strconv.Itoa(report.TotalPapers())},
		{"Generated", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
	}
	if report.Error != "" {
		rows = append(rows, []string{"Status", "⚠️ " + report.Error})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeSection writes one classifier section with its papers.
func (w *MarkdownWriter) writeSection(md *markdown.Markdown, section model.Section) {
	md.H3(w.titler.String(section.Name) + " (" + strconv.Itoa(len(section.Papers)) + ")")
	md.PlainText("")

	for i := range section.Papers {
		w.writePaper(md, &section.Papers[i])
	}
}

// writePaper writes one paper entry. Summary lines whose value is
// empty are omitted rather than rendered as bare labels.
func (w *MarkdownWriter) writePaper(md *markdown.Markdown, p *model.Paper) {
	md.H4(markdown.Link(p.Title, p.URL))
	if len(p.Authors) > 0 {
		md.PlainTextf("%s %s", markdown.Bold("Authors:"), p.AuthorsLine())
	}
	if p.TLDR != "" {
		md.PlainTextf("%s %s", markdown.Bold("TL;DR:"), p.TLDR)
	}
	if len(p.Keywords) > 0 {
		md.PlainTextf("%s %s", markdown.Bold("Keywords:"), strings.Join(p.Keywords, ", "))
	}
	if p.Comments != "" {
		md.PlainTextf("%s %s", markdown.Bold("Comments:"), p.Comments)
	}
	md.PlainText("")
}

// writeFooter writes the digest footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Generated by [arxiv-daily](https://github.com/MaoSong2022/arxiv-daily)*")
}
