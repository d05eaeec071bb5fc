// Package viewmodel projects the stored record list plus local UI flags into
// a renderable gallery view. The projection is pure: callers re-run it on
// every state transition and render the result.
package viewmodel

import (
	"strings"

	"github.com/promptframe/promptframe-api/pkg/gallery_api/models"
)

// GalleryState is the raw UI state: the fetched records (newest first) and
// the local flags a client keeps between requests.
type GalleryState struct {
	Records       []models.ImageGeneration
	Loading       bool
	Generating    bool
	Search        string
	SelectedIndex int
}

// GalleryItem is one renderable cell.
type GalleryItem struct {
	Id        string
	Prompt    string
	ImageURL  string
	CreatedAt string
}

// GalleryView is the renderable output of a projection.
type GalleryView struct {
	Items         []GalleryItem
	PreloadURLs   []string
	Loading       bool
	Generating    bool
	Empty         bool
	SelectedIndex int
}

// Project computes the view for a state. Filtering is a case-insensitive
// substring match over the prompt; the selection index is clamped to the
// filtered list.
func Project(s GalleryState) GalleryView {
	view := GalleryView{
		Loading:    s.Loading,
		Generating: s.Generating,
	}

	search := strings.ToLower(strings.TrimSpace(s.Search))
	for _, rec := range s.Records {
		// Preloading covers every fetched record, filtered out or not.
		view.PreloadURLs = append(view.PreloadURLs, rec.ImageUrl)

		if search != "" && !strings.Contains(strings.ToLower(rec.Prompt), search) {
			continue
		}
		view.Items = append(view.Items, GalleryItem{
			Id:        rec.Id,
			Prompt:    rec.Prompt,
			ImageURL:  rec.ImageUrl,
			CreatedAt: rec.CreatedAt.Format("2006-01-02"),
		})
	}

	view.Empty = !s.Loading && len(view.Items) == 0

	view.SelectedIndex = s.SelectedIndex
	if view.SelectedIndex >= len(view.Items) {
		view.SelectedIndex = len(view.Items) - 1
	}
	if view.SelectedIndex < 0 {
		view.SelectedIndex = 0
	}

	return view
}
