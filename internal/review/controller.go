package review

import (
	"fmt"
	"slices"
)

// ToggleAbstract flips the abstract panel on the given card between
// collapsed and expanded. It reports whether the card exists.
func (s *State) ToggleAbstract(cardID string) bool {
	card, ok := s.Card(cardID)
	if !ok {
		return false
	}
	card.AbstractExpanded = !card.AbstractExpanded
	return true
}

// ToggleVisibility flips the visibility of the given card. Hiding
// leaves the card in place so it can be shown again; the toggle label
// tracks the new state through VisibilityLabel.
func (s *State) ToggleVisibility(cardID string) bool {
	card, ok := s.Card(cardID)
	if !ok {
		return false
	}
	card.Visible = !card.Visible
	return true
}

// AddKeywordField appends one empty keyword field to the given card.
// Blank fields are harmless: export drops them.
func (s *State) AddKeywordField(cardID string) bool {
	card, ok := s.Card(cardID)
	if !ok {
		return false
	}
	card.KeywordFields = append(card.KeywordFields, "")
	return true
}

// UpdateKeywordField stores the edited value of one keyword field.
func (s *State) UpdateKeywordField(cardID string, index int, value string) bool {
	card, ok := s.Card(cardID)
	if !ok || index < 0 || index >= len(card.KeywordFields) {
		return false
	}
	card.KeywordFields[index] = value
	return true
}

// ToggleTLDREdit switches the TL;DR pane between view and edit mode.
// Entering edit mode seeds the editable text with the current view
// text; leaving edit mode commits the edited text exactly as typed,
// including an empty string.
func (s *State) ToggleTLDREdit(cardID string) bool {
	card, ok := s.Card(cardID)
	if !ok {
		return false
	}
	togglePane(&card.TLDR)
	return true
}

// ToggleCommentsEdit switches the comments pane between view and edit
// mode, with the same commit-on-exit behavior as ToggleTLDREdit.
func (s *State) ToggleCommentsEdit(cardID string) bool {
	card, ok := s.Card(cardID)
	if !ok {
		return false
	}
	togglePane(&card.Comments)
	return true
}

func togglePane(p *Pane) {
	if p.Editing {
		p.View = p.Edit
		p.Editing = false
		return
	}
	p.Edit = p.View
	p.Editing = true
}

// SetTLDRDraft stores in-progress TL;DR text. It only applies while
// the pane is in edit mode; the committed text is untouched.
func (s *State) SetTLDRDraft(cardID, text string) bool {
	card, ok := s.Card(cardID)
	if !ok || !card.TLDR.Editing {
		return false
	}
	card.TLDR.Edit = text
	return true
}

// SetCommentsDraft stores in-progress comments text while editing.
func (s *State) SetCommentsDraft(cardID, text string) bool {
	card, ok := s.Card(cardID)
	if !ok || !card.Comments.Editing {
		return false
	}
	card.Comments.Edit = text
	return true
}

// SetDensity applies a card density level and persists it as the
// preferred density for future sessions. Applying one level always
// clears the previous one; there is never more than one active level.
func (s *State) SetDensity(d Density) error {
	if _, ok := ParseDensity(string(d)); !ok {
		return fmt.Errorf("unknown density level %q", d)
	}
	s.density = d

	if s.store == nil {
		return nil
	}
	if err := s.store.Set(DensityKey, string(d)); err != nil {
		return fmt.Errorf("persist density preference: %w", err)
	}
	return nil
}

// ShowSection sets the visibility of every card in a section at once.
// The per-card toggle labels follow, same as individual toggles.
func (s *State) ShowSection(sectionID string, visible bool) bool {
	sec, ok := s.Section(sectionID)
	if !ok {
		return false
	}
	for _, card := range sec.Cards {
		card.Visible = visible
	}
	return true
}

// DeleteSection removes a section together with its cards and sidebar
// entry after the confirm callback approves it. A declined confirm
// leaves the state untouched. The removal is all-or-nothing, so the
// sidebar can never reference a section that no longer exists.
func (s *State) DeleteSection(sectionID string, confirm func() bool) bool {
	idx := slices.IndexFunc(s.sections, func(sec *Section) bool {
		return sec.ID == sectionID
	})
	if idx < 0 {
		return false
	}
	if confirm != nil && !confirm() {
		return false
	}

	s.sections = slices.Delete(s.sections, idx, idx+1)
	s.logger.Info("deleted category", "section", sectionID, "remaining", len(s.sections))
	return true
}

// ScrollLookahead is the pixel offset added to the viewport position
// when deciding which section is active, so a section lights up as its
// heading approaches the top rather than after it passes.
const ScrollLookahead = 100

// ActiveSection returns the ID of the section whose content the
// viewport is currently in, given the scroll position and each
// section's vertical offset in display order. The last section whose
// offset has been reached (within the lookahead) wins; only that one
// sidebar entry is highlighted. Before the first section it returns "".
func (s *State) ActiveSection(scrollY int, offsets map[string]int) string {
	active := ""
	for _, sec := range s.sections {
		top, ok := offsets[sec.ID]
		if !ok {
			continue
		}
		if scrollY+ScrollLookahead >= top {
			active = sec.ID
		}
	}
	return active
}
