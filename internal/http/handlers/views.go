package handlers

import (
	"fmt"
	"time"

	"mockupstudio/internal/domain"
	"mockupstudio/internal/gallery"
)

type viewResponse struct {
	MIMEType string `json:"mime_type"`
	URL      string `json:"url"`
}

type logoResponse struct {
	Placement domain.LogoPlacement `json:"placement"`
	Size      domain.LogoSize      `json:"size"`
}

type designResponse struct {
	ID            string                       `json:"id"`
	Concept       string                       `json:"concept"`
	BackConcept   string                       `json:"back_concept,omitempty"`
	Style         string                       `json:"style"`
	Apparel       domain.Apparel               `json:"apparel"`
	Gender        domain.Gender                `json:"model_gender"`
	Logo          *logoResponse                `json:"logo,omitempty"`
	CreatedAt     time.Time                    `json:"created_at"`
	Views         map[domain.View]viewResponse `json:"views"`
	RotationReady bool                         `json:"rotation_ready"`
	PrintFilesURL string                       `json:"print_files_url,omitempty"`
	Loading       bool                         `json:"loading"`
}

type stateResponse struct {
	SessionID string           `json:"session_id"`
	Status    gallery.Status   `json:"status"`
	Message   string           `json:"message,omitempty"`
	Designs   []designResponse `json:"designs"`
}

func designPath(sessionID, designID string) string {
	return fmt.Sprintf("/v1/sessions/%s/designs/%s", sessionID, designID)
}

// toDesignResponse replaces image bytes with download URLs.
func toDesignResponse(sessionID string, d domain.Design) designResponse {
	base := designPath(sessionID, d.ID)
	out := designResponse{
		ID:            d.ID,
		Concept:       d.Concept,
		BackConcept:   d.BackConcept,
		Style:         d.Style,
		Apparel:       d.Apparel,
		Gender:        d.Gender,
		CreatedAt:     d.CreatedAt,
		Views:         make(map[domain.View]viewResponse),
		RotationReady: d.Views.RotationReady(),
	}
	if d.Logo != nil {
		out.Logo = &logoResponse{Placement: d.Logo.Placement, Size: d.Logo.Size}
	}
	for _, v := range d.Views.Populated() {
		img := d.Views.Get(v)
		out.Views[v] = viewResponse{MIMEType: img.MIMEType, URL: base + "/views/" + string(v)}
	}
	if d.Views.Has(domain.ViewFlatFront) || d.Views.Has(domain.ViewFlatBack) {
		out.PrintFilesURL = base + "/prints.zip"
	}
	return out
}

func toStateResponse(sessionID string, s gallery.State) stateResponse {
	out := stateResponse{
		SessionID: sessionID,
		Status:    s.Status,
		Message:   s.Message,
		Designs:   make([]designResponse, 0, len(s.Designs)),
	}
	for _, d := range s.Designs {
		dr := toDesignResponse(sessionID, d)
		dr.Loading = s.IsLoading(d.ID)
		out.Designs = append(out.Designs, dr)
	}
	return out
}
