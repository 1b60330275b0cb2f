package model

import (
	"testing"
)

// TestPaperPrimaryClassifier verifies classifier selection for grouping.
func TestPaperPrimaryClassifier(t *testing.T) {
	t.Parallel()

	t.Run("first classifier wins", func(t *testing.T) {
		t.Parallel()

		p := &Paper{Classifiers: []string{"Large Language Model", "agent"}}
		if got := p.PrimaryClassifier(); got != "large language model" {
			t.Errorf("expected 'large language model', got %q", got)
		}
	})

	t.Run("whitespace is trimmed", func(t *testing.T) {
		t.Parallel()

		p := &Paper{Classifiers: []string{"  survey \n"}}
		if got := p.PrimaryClassifier(); got != "survey" {
			t.Errorf("expected 'survey', got %q", got)
		}
	})

	t.Run("no classifiers falls back to others", func(t *testing.T) {
		t.Parallel()

		p := &Paper{}
		if got := p.PrimaryClassifier(); got != "others" {
			t.Errorf("expected 'others', got %q", got)
		}
	})
}

// TestPaperAuthorsLine verifies the rendered authors line format.
func TestPaperAuthorsLine(t *testing.T) {
	t.Parallel()

	t.Run("joins authors with commas", func(t *testing.T) {
		t.Parallel()

		p := &Paper{Authors: []string{"Jane Doe", "J. Smith"}}
		if got := p.AuthorsLine(); got != "Jane Doe, J. Smith" {
			t.Errorf("unexpected authors line: %q", got)
		}
	})

	t.Run("empty author list yields empty line", func(t *testing.T) {
		t.Parallel()

		p := &Paper{}
		if got := p.AuthorsLine(); got != "" {
			t.Errorf("expected empty line, got %q", got)
		}
	})
}
