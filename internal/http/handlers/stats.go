package handlers

import (
	"net/http"
	"strconv"
	"time"

	"mockupstudio/internal/adapter/repo"
)

const defaultStatsWindow = 24 * time.Hour

// GenerationStats reports per provider and view success rates over the last
// `hours` hours (default 24).
func (a *App) GenerationStats(w http.ResponseWriter, r *http.Request) {
	if a.Stats == nil {
		a.error(w, http.StatusServiceUnavailable, "unavailable", "generation log is not configured")
		return
	}
	window := defaultStatsWindow
	if raw := r.URL.Query().Get("hours"); raw != "" {
		h, err := strconv.Atoi(raw)
		if err != nil || h <= 0 {
			a.error(w, http.StatusBadRequest, "bad_request", "hours must be a positive integer")
			return
		}
		window = time.Duration(h) * time.Hour
	}
	since := a.now().Add(-window)
	stats, err := a.Stats.StatsSince(r.Context(), since)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if stats == nil {
		stats = []repo.ViewStats{}
	}
	a.json(w, http.StatusOK, map[string]any{"since": since.UTC(), "stats": stats})
}
