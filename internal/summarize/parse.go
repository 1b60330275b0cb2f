package summarize

import "strings"

// Summary holds the fields extracted from one model response.
type Summary struct {
	// TLDR is the short summary sentence(s).
	TLDR string

	// Keywords are the suggested technical keywords.
	Keywords []string

	// Classifiers are the assigned topic labels.
	Classifiers []string
}

// Response block markers. The prompt instructs the model to answer in
// exactly this "TL;DR: / Keywords: / Classifier:" layout; parsing is a
// plain split on these markers rather than anything structured, because
// that is the contract the prompt establishes.
const (
	markerTLDR       = "TL;DR:"
	markerKeywords   = "Keywords:"
	markerClassifier = "Classifier:"
)

// ParseResponse extracts the summary fields from a model response.
// Missing blocks yield zero values rather than errors; a model that
// ignores part of the format still contributes whatever it did produce.
func ParseResponse(text string) Summary {
	var s Summary

	if rest, ok := after(text, markerTLDR); ok {
		tldr := rest
		if i := strings.Index(tldr, markerKeywords); i >= 0 {
			tldr = tldr[:i]
		}
		s.TLDR = strings.TrimSpace(tldr)
	}

	if rest, ok := after(text, markerKeywords); ok {
		keywords := rest
		if i := strings.Index(keywords, markerClassifier); i >= 0 {
			keywords = keywords[:i]
		}
		s.Keywords = splitList(keywords)
	}

	if rest, ok := after(text, markerClassifier); ok {
		s.Classifiers = splitList(rest)
	}

	return s
}

// after returns the text following the first occurrence of marker.
func after(text, marker string) (string, bool) {
	i := strings.Index(text, marker)
	if i < 0 {
		return "", false
	}
	return text[i+len(marker):], true
}

// splitList splits a comma-separated block into trimmed non-empty items.
func splitList(block string) []string {
	var items []string
	for _, item := range strings.Split(block, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
