package handlers

import (
	"net/http"
	"strconv"

	"mockupstudio/internal/concepts"
	"mockupstudio/internal/domain"
	"mockupstudio/internal/imagegen"
	"mockupstudio/internal/studio"
)

type catalogResponse struct {
	Styles       []imagegen.Style       `json:"styles"`
	DefaultStyle string                 `json:"default_style"`
	Apparel      []domain.Apparel       `json:"apparel"`
	Placements   []domain.LogoPlacement `json:"logo_placements"`
	Sizes        []domain.LogoSize      `json:"logo_sizes"`
	Effects      []domain.TextEffect    `json:"text_effects"`
	Views        []domain.View          `json:"views"`
	MaxBatch     int                    `json:"max_batch"`
	QuickPicks   []string               `json:"quick_picks"`
	Concepts     []string               `json:"concepts"`
}

// Catalog lists every option a client needs to build a generation form.
func (a *App) Catalog(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, catalogResponse{
		Styles:       imagegen.Styles(),
		DefaultStyle: imagegen.DefaultStyle,
		Apparel:      domain.Apparels,
		Placements:   domain.LogoPlacements,
		Sizes:        domain.LogoSizes,
		Effects:      domain.TextEffects,
		Views:        domain.AllViews,
		MaxBatch:     studio.MaxBatch,
		QuickPicks:   concepts.QuickPicks(),
		Concepts:     concepts.All(),
	})
}

func (a *App) SuggestConcepts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			a.error(w, http.StatusBadRequest, "bad_request", "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	suggestions := concepts.Suggest(r.URL.Query().Get("q"), limit)
	if suggestions == nil {
		suggestions = []string{}
	}
	a.json(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}
