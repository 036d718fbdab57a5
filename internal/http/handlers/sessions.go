package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mockupstudio/internal/domain"
	"mockupstudio/internal/logo"
	"mockupstudio/internal/studio"
)

type logoPayload struct {
	// Image is a data URL or bare base64.
	Image     string `json:"image"`
	Placement string `json:"placement"`
	Size      string `json:"size"`
}

type generateRequest struct {
	Concept     string       `json:"concept"`
	BackConcept string       `json:"back_concept"`
	Style       string       `json:"style"`
	Apparel     string       `json:"apparel"`
	Count       int          `json:"count"`
	Logo        *logoPayload `json:"logo"`
}

func (a *App) CreateSession(w http.ResponseWriter, r *http.Request) {
	id, g := a.Service.Sessions().Create()
	a.json(w, http.StatusCreated, toStateResponse(id, g.Snapshot()))
}

func (a *App) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "session_id")
	g, err := a.Service.Sessions().Get(id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toStateResponse(id, g.Snapshot()))
}

// GenerateDesigns runs an initial batch. Logo problems are rejected before
// any generation call.
func (a *App) GenerateDesigns(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")
	var req generateRequest
	if !a.decode(w, r, &req) {
		return
	}

	in := studio.InitialRequest{
		Concept:     req.Concept,
		BackConcept: req.BackConcept,
		Style:       req.Style,
		Apparel:     domain.ParseApparel(req.Apparel),
		Count:       req.Count,
	}
	if in.Count == 0 {
		in.Count = studio.MaxBatch
	}
	if req.Logo != nil && req.Logo.Image != "" {
		data, err := logo.DecodeDataURL(req.Logo.Image)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		cfg, err := logo.Prepare(data, req.Logo.Placement, req.Logo.Size)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		in.Logo = &cfg
	}

	state, err := a.Service.Generate(r.Context(), sessionID, in)
	if err != nil {
		if errors.Is(err, studio.ErrBatchFailed) {
			a.json(w, http.StatusBadGateway, map[string]any{
				"error": errorDetail{Code: "generation_failed", Message: studio.BatchFailedMessage},
				"state": toStateResponse(sessionID, state),
			})
			return
		}
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toStateResponse(sessionID, state))
}

func (a *App) GetDesign(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")
	d, err := a.Service.Design(sessionID, chi.URLParam(r, "design_id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toDesignResponse(sessionID, d))
}

func (a *App) DeleteDesign(w http.ResponseWriter, r *http.Request) {
	if err := a.Service.Remove(chi.URLParam(r, "session_id"), chi.URLParam(r, "design_id")); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
