package review

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/MaoSong2022/arxiv-daily/internal/config"
	"github.com/MaoSong2022/arxiv-daily/internal/model"
	"github.com/MaoSong2022/arxiv-daily/internal/prefs"
)

// Density is the card display density level.
type Density string

// The fixed set of density levels. Exactly one is active at any time.
const (
	DensitySmall  Density = "small"
	DensityMedium Density = "medium"
	DensityLarge  Density = "large"
)

// DensityKey is the preference-store key for the persisted density.
const DensityKey = "card-size"

// DefaultDensity is used when no preference has been persisted.
const DefaultDensity = DensityMedium

// ParseDensity validates a density level string.
func ParseDensity(s string) (Density, bool) {
	switch Density(s) {
	case DensitySmall, DensityMedium, DensityLarge:
		return Density(s), true
	}
	return "", false
}

// AuthorsLabel is the literal prefix on the rendered authors line.
const AuthorsLabel = "Authors:"

// Pane is a view/edit text pair for an editable card field.
// Edits live in Edit while Editing is true and are committed into View
// only when editing ends; View is what collection and export read.
type Pane struct {
	// View is the committed, displayed text.
	View string

	// Edit is the in-progress editable text.
	Edit string

	// Editing reports whether the editable pane is currently shown.
	Editing bool
}

// Card is the interactive state of one paper on the report.
type Card struct {
	// ID is the paper identifier.
	ID string

	// Title of the paper.
	Title string

	// PDFURL is the paper's PDF link target.
	PDFURL string

	// AuthorsText is the rendered authors line including the
	// "Authors:" label prefix.
	AuthorsText string

	// KeywordFields holds one entry per keyword input field, in field
	// order. Blank fields stay present until export, which drops them.
	KeywordFields []string

	// Abstract is the abstract text.
	Abstract string

	// AbstractExpanded reports whether the abstract panel is shown.
	AbstractExpanded bool

	// TLDR is the TL;DR view/edit pane pair.
	TLDR Pane

	// Comments is the comments view/edit pane pair.
	Comments Pane

	// Visible is the sole criterion for inclusion in exports. Hidden
	// cards remain in the state so they can be shown again later.
	Visible bool
}

// VisibilityLabel returns the visibility-toggle control label, which
// must always agree with the card's visibility.
func (c *Card) VisibilityLabel() string {
	if c.Visible {
		return "Hide"
	}
	return "Show"
}

// AbstractLabel returns the abstract-toggle control label.
func (c *Card) AbstractLabel() string {
	if c.AbstractExpanded {
		return "Hide Abstract"
	}
	return "Show Abstract"
}

// Section is a named grouping of cards with a sidebar entry.
// The sidebar entry exists exactly as long as the section does, so
// deleting a section can never leave an orphaned entry behind.
type Section struct {
	// ID is the URL-safe section identifier.
	ID string

	// Name is the display name.
	Name string

	// Cards in display order.
	Cards []*Card
}

// EmptyPlaceholder is shown when the last section has been deleted.
const EmptyPlaceholder = "No categories to display."

// State is the typed view model behind the interactive report.
//
// Design decision: The rendered page is derived from this structure
// instead of being the source of truth itself. Handlers mutate typed
// fields and the page re-renders from them, which removes the fragile
// re-parsing of text content out of markup on every interaction.
type State struct {
	// sections in display order.
	sections []*Section

	// density is the active card density level.
	density Density

	// store persists the density preference across sessions.
	// May be nil, in which case density changes are session-only.
	store *prefs.Store

	// logger for structured logging.
	logger *slog.Logger
}

// StateOption configures a State.
type StateOption func(*State)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) StateOption {
	return func(s *State) {
		s.logger = logger
	}
}

// NewState builds the review state from a daily report.
// Empty sections and the catch-all sections are omitted, matching the
// rendered page. The persisted density preference, if present and valid,
// is restored the same way an explicit density update would apply it.
func NewState(report *model.DailyReport, store *prefs.Store, opts ...StateOption) *State {
	s := &State{
		density: DefaultDensity,
		store:   store,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	boring := config.BoringSections()
	for _, section := range report.Sections {
		if len(section.Papers) == 0 || slices.Contains(boring, section.ID) {
			continue
		}

		sec := &Section{ID: section.ID, Name: section.Name}
		for _, p := range section.Papers {
			sec.Cards = append(sec.Cards, newCard(p))
		}
		s.sections = append(s.sections, sec)
	}

	s.restore()
	return s
}

// newCard builds the initial card state for one paper.
func newCard(p model.Paper) *Card {
	card := &Card{
		ID:            p.ID,
		Title:         p.Title,
		PDFURL:        p.PDFURL,
		AuthorsText:   AuthorsLabel + " " + p.AuthorsLine(),
		KeywordFields: slices.Clone(p.Keywords),
		Abstract:      p.Abstract,
		TLDR:          Pane{View: p.TLDR},
		Comments:      Pane{View: p.Comments},
		Visible:       true,
	}
	return card
}

// restore applies the persisted density preference if one exists.
// Absence or an unparseable value falls back to the default silently;
// the preference store is best effort by design.
func (s *State) restore() {
	if s.store == nil {
		return
	}
	raw, ok := s.store.Get(DensityKey)
	if !ok {
		return
	}
	if d, valid := ParseDensity(raw); valid {
		s.density = d
	} else {
		s.logger.Warn("ignoring invalid persisted density", "value", raw)
	}
}

// Sections returns the sections in display order.
func (s *State) Sections() []*Section {
	return s.sections
}

// Empty reports whether every section has been deleted.
func (s *State) Empty() bool {
	return len(s.sections) == 0
}

// Density returns the active density level.
func (s *State) Density() Density {
	return s.density
}

// DensityClass returns the CSS class for the active density.
// Exactly one such class is ever emitted.
func (s *State) DensityClass() string {
	return "card-size-" + string(s.density)
}

// Section returns the section with the given ID.
// A missing section is not an error; callers treat it as a no-op.
func (s *State) Section(id string) (*Section, bool) {
	for _, sec := range s.sections {
		if sec.ID == id {
			return sec, true
		}
	}
	return nil, false
}

// Card returns the card with the given ID.
func (s *State) Card(id string) (*Card, bool) {
	for _, sec := range s.sections {
		for _, c := range sec.Cards {
			if c.ID == id {
				return c, true
			}
		}
	}
	return nil, false
}

// parseAuthors derives the author list from a rendered authors line:
// the "Authors:" label prefix is stripped, the remainder is split on
// commas, and each name is trimmed. Blank entries are dropped.
func parseAuthors(authorsText string) []string {
	text := strings.TrimSpace(authorsText)
	text = strings.TrimSpace(strings.TrimPrefix(text, AuthorsLabel))

	var authors []string
	for _, name := range strings.Split(text, ",") {
		if name = strings.TrimSpace(name); name != "" {
			authors = append(authors, name)
		}
	}
	return authors
}
