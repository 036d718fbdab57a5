package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"mockupstudio/internal/domain"
	"mockupstudio/internal/studio"
)

type viewRequest struct {
	View   string `json:"view"`
	Effect string `json:"effect"`
}

type swapResponse struct {
	Swapped bool           `json:"swapped"`
	Design  designResponse `json:"design"`
}

// CompleteRotation accepts the displayed view so a rotation can be rebuilt
// after a model swap cleared the front.
func (a *App) CompleteRotation(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if !a.decode(w, r, &req) {
		return
	}
	view, ok := a.viewOrFront(w, r, req.View)
	if !ok {
		return
	}
	sessionID := chi.URLParam(r, "session_id")
	d, err := a.Service.CompleteRotation(r.Context(), sessionID, chi.URLParam(r, "design_id"), view, domain.ParseTextEffect(req.Effect))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toDesignResponse(sessionID, d))
}

func (a *App) GeneratePrintFiles(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if !a.decode(w, r, &req) {
		return
	}
	sessionID := chi.URLParam(r, "session_id")
	d, err := a.Service.GeneratePrintFiles(r.Context(), sessionID, chi.URLParam(r, "design_id"), domain.ParseTextEffect(req.Effect))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toDesignResponse(sessionID, d))
}

func (a *App) ApplyEffect(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if !a.decode(w, r, &req) {
		return
	}
	view, ok := domain.ParseView(req.View)
	if !ok {
		a.fail(w, r, studio.ErrInvalidView)
		return
	}
	sessionID := chi.URLParam(r, "session_id")
	d, err := a.Service.ApplyEffect(r.Context(), sessionID, chi.URLParam(r, "design_id"), view, domain.ParseTextEffect(req.Effect))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toDesignResponse(sessionID, d))
}

// SwapGender defaults to the front view when none is given. Print views
// carry no model and are rejected with 400.
func (a *App) SwapGender(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if !a.decode(w, r, &req) {
		return
	}
	view, ok := a.viewOrFront(w, r, req.View)
	if !ok {
		return
	}
	sessionID := chi.URLParam(r, "session_id")
	d, swapped, err := a.Service.SwapGender(r.Context(), sessionID, chi.URLParam(r, "design_id"), view, domain.ParseTextEffect(req.Effect))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, swapResponse{Swapped: swapped, Design: toDesignResponse(sessionID, d)})
}

func (a *App) viewOrFront(w http.ResponseWriter, r *http.Request, raw string) (domain.View, bool) {
	if raw == "" {
		return domain.ViewFront, true
	}
	view, ok := domain.ParseView(raw)
	if !ok {
		a.fail(w, r, studio.ErrInvalidView)
		return "", false
	}
	return view, true
}
