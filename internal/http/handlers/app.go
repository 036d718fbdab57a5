package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"mockupstudio/internal/adapter/repo"
	"mockupstudio/internal/domain"
	"mockupstudio/internal/export"
	"mockupstudio/internal/gallery"
	"mockupstudio/internal/logo"
	"mockupstudio/internal/middleware"
	"mockupstudio/internal/studio"
)

// maxBodyBytes leaves room for a base64 encoded logo at the 2 MiB limit.
const maxBodyBytes = 4 << 20

// GenerationStats is the read side of the generation attempt log.
type GenerationStats interface {
	StatsSince(ctx context.Context, since time.Time) ([]repo.ViewStats, error)
}

// App carries the dependencies shared by every handler. Exporter and Stats
// are optional.
type App struct {
	Service  *studio.Service
	Exporter *export.Exporter
	Stats    GenerationStats
	Provider string
	Logger   zerolog.Logger

	now func() time.Time
}

func NewApp(svc *studio.Service, provider string, logger zerolog.Logger) *App {
	return &App{Service: svc, Provider: provider, Logger: logger, now: time.Now}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, errorBody{Error: errorDetail{Code: errCode, Message: message}})
}

// fail maps service errors onto HTTP statuses.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, studio.ErrEmptyConcept),
		errors.Is(err, studio.ErrInvalidCount),
		errors.Is(err, studio.ErrInvalidView),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, logo.ErrTooLarge),
		errors.Is(err, logo.ErrEmpty),
		errors.Is(err, logo.ErrNotImage),
		errors.Is(err, logo.ErrTooManyPixels):
		a.error(w, http.StatusBadRequest, "bad_request", publicMessage(err))
	case errors.Is(err, gallery.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "session or design not found")
	case errors.Is(err, export.ErrNoPrintFiles):
		a.error(w, http.StatusNotFound, "not_found", "print files have not been generated yet")
	case errors.Is(err, studio.ErrDesignBusy):
		a.error(w, http.StatusConflict, "busy", "another operation is running for this design")
	case errors.Is(err, studio.ErrBatchFailed):
		a.error(w, http.StatusBadGateway, "generation_failed", studio.BatchFailedMessage)
	default:
		a.Logger.Error().Err(err).
			Str("request_id", middleware.RequestIDFromContext(r.Context())).
			Str("path", r.URL.Path).
			Msg("handler failed")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

// Messages shown to users verbatim for rejected logo uploads.
const (
	tooLargeMessage      = "File is too large. Max 2MB."
	tooManyPixelsMessage = "Image dimensions are too large. Max 8192px per side."
)

func publicMessage(err error) string {
	switch {
	case errors.Is(err, logo.ErrTooLarge):
		return tooLargeMessage
	case errors.Is(err, logo.ErrTooManyPixels):
		return tooManyPixelsMessage
	}
	return err.Error()
}

// decode reads an optional JSON body into v. An empty body leaves v untouched.
func (a *App) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		a.error(w, http.StatusRequestEntityTooLarge, "too_large", tooLargeMessage)
		return false
	}
	a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
	return false
}
