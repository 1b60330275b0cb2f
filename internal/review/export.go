package review

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/MaoSong2022/arxiv-daily/internal/model"
)

// ErrNothingSelected is returned by the export operations when no
// visible paper remains to export.
var ErrNothingSelected = errors.New("no papers selected for export")

// CollectSelected gathers the export records for every visible card,
// in display order. Hidden cards are skipped regardless of section.
// Keyword fields that are empty or whitespace-only at collection time
// are dropped; the rest keep their field order.
//
// Collection is a pure read: the state is identical before and after,
// so collecting twice in a row yields the same records.
func (s *State) CollectSelected() []model.ExportRecord {
	var records []model.ExportRecord
	for _, sec := range s.sections {
		for _, card := range sec.Cards {
			if !card.Visible {
				continue
			}
			records = append(records, model.ExportRecord{
				ID:       card.ID,
				Title:    card.Title,
				PDFURL:   card.PDFURL,
				Authors:  parseAuthors(card.AuthorsText),
				Keywords: collectKeywords(card.KeywordFields),
				Abstract: card.Abstract,
				TLDR:     card.TLDR.View,
				Comments: card.Comments.View,
			})
		}
	}
	return records
}

// collectKeywords trims keyword field values and drops blank ones.
func collectKeywords(fields []string) []string {
	var keywords []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			keywords = append(keywords, f)
		}
	}
	return keywords
}

// ExportJSON writes the visible papers as an indented JSON array.
// It returns ErrNothingSelected when every paper is hidden.
func (s *State) ExportJSON(w io.Writer) error {
	records := s.CollectSelected()
	if len(records) == 0 {
		return ErrNothingSelected
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	s.logger.Info("exported papers", "format", "json", "count", len(records))
	return nil
}

// ExportMarkdown writes the visible papers as a Markdown document:
// one titled block per paper with labeled author, PDF, keyword and
// TL;DR lines, abstract and comments subsections, and a horizontal
// rule between papers. Lines and subsections whose value is empty are
// omitted rather than rendered as bare labels.
// It returns ErrNothingSelected when every paper is hidden.
func (s *State) ExportMarkdown(w io.Writer) error {
	records := s.CollectSelected()
	if len(records) == 0 {
		return ErrNothingSelected
	}

	doc := markdown.NewMarkdown(w)
	for i, rec := range records {
		if i > 0 {
			doc.HorizontalRule()
		}
		doc.H2(rec.Title)
		if len(rec.Authors) > 0 {
			doc.PlainTextf("%s %s", markdown.Bold("Authors:"), strings.Join(rec.Authors, ", "))
		}
		if rec.PDFURL != "" {
			doc.PlainTextf("%s %s", markdown.Bold("PDF:"), markdown.Link(rec.PDFURL, rec.PDFURL))
		}
		if len(rec.Keywords) > 0 {
			doc.PlainTextf("%s %s", markdown.Bold("Keywords:"), strings.Join(rec.Keywords, ", "))
		}
		if rec.TLDR != "" {
			doc.PlainTextf("%s %s", markdown.Bold("TL;DR:"), rec.TLDR)
		}
		if rec.Abstract != "" {
			doc.H3("Abstract")
			doc.PlainText(rec.Abstract)
		}
		if rec.Comments != "" {
			doc.H3("Comments")
			doc.PlainText(rec.Comments)
		}
	}

	if err := doc.Build(); err != nil {
		return fmt.Errorf("build markdown export: %w", err)
	}
	s.logger.Info("exported papers", "format", "markdown", "count", len(records))
	return nil
}
