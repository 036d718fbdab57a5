package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"mockupstudio/internal/domain"
	"mockupstudio/internal/export"
	"mockupstudio/internal/gallery"
	"mockupstudio/internal/studio"
)

func attachment(w http.ResponseWriter, name, mime string, size int) {
	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(size))
}

// DownloadView streams one generated view under its download name.
func (a *App) DownloadView(w http.ResponseWriter, r *http.Request) {
	view, ok := domain.ParseView(chi.URLParam(r, "view"))
	if !ok {
		a.fail(w, r, studio.ErrInvalidView)
		return
	}
	d, err := a.Service.Design(chi.URLParam(r, "session_id"), chi.URLParam(r, "design_id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	f, ok := export.ViewFile(d, view)
	if !ok {
		a.fail(w, r, gallery.ErrNotFound)
		return
	}
	attachment(w, f.Name, f.MIME, len(f.Data))
	_, _ = w.Write(f.Data)
}

func (a *App) DownloadPrintFiles(w http.ResponseWriter, r *http.Request) {
	d, err := a.Service.Design(chi.URLParam(r, "session_id"), chi.URLParam(r, "design_id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	data, err := export.PrintPackage(d)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	attachment(w, export.PackageName(d.ID), "application/zip", len(data))
	_, _ = w.Write(data)
}

// ExportDesign copies every populated view into the configured storage sink.
func (a *App) ExportDesign(w http.ResponseWriter, r *http.Request) {
	if a.Exporter == nil {
		a.error(w, http.StatusServiceUnavailable, "unavailable", "export storage is not configured")
		return
	}
	d, err := a.Service.Design(chi.URLParam(r, "session_id"), chi.URLParam(r, "design_id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	locations, err := a.Exporter.Export(r.Context(), d)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"design_id": d.ID, "files": locations})
}
