package server

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/MaoSong2022/arxiv-daily/internal/review"
)

//go:embed assets/page.html
var assets embed.FS

// pageTemplate parses the embedded review page template.
func pageTemplate() (*template.Template, error) {
	tmpl, err := template.New("page").ParseFS(assets, "assets/page.html")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return tmpl, nil
}

// pageData is the template input for one render of the review page.
type pageData struct {
	// State is the review view model.
	State *review.State

	// Densities lists the selectable density levels.
	Densities []review.Density

	// Placeholder is shown when every category has been deleted.
	Placeholder string
}

// newPageData assembles the template input from the review state.
func newPageData(state *review.State) pageData {
	return pageData{
		State:       state,
		Densities:   []review.Density{review.DensitySmall, review.DensityMedium, review.DensityLarge},
		Placeholder: review.EmptyPlaceholder,
	}
}
