package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"mockupstudio/internal/http/handlers"
	"mockupstudio/internal/middleware"
)

// Options tunes the shared middleware stack.
type Options struct {
	AllowedOrigins  []string
	RateLimitPerMin int
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		middleware.Logger(app.Logger),
		chimw.Recoverer,
		middleware.CORS(opts.AllowedOrigins),
	)

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/catalog", app.Catalog)
	r.Get("/v1/concepts/suggest", app.SuggestConcepts)
	r.Get("/v1/stats/generations", app.GenerationStats)

	r.Route("/v1/sessions", func(r chi.Router) {
		r.Post("/", app.CreateSession)
		r.Route("/{session_id}", func(r chi.Router) {
			r.Get("/", app.GetSession)

			// generation endpoints share the per-client budget
			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
				r.Post("/designs", app.GenerateDesigns)
				r.Post("/designs/{design_id}/rotation", app.CompleteRotation)
				r.Post("/designs/{design_id}/prints", app.GeneratePrintFiles)
				r.Post("/designs/{design_id}/effect", app.ApplyEffect)
				r.Post("/designs/{design_id}/gender", app.SwapGender)
			})

			r.Get("/designs/{design_id}", app.GetDesign)
			r.Delete("/designs/{design_id}", app.DeleteDesign)
			r.Get("/designs/{design_id}/views/{view}", app.DownloadView)
			r.Get("/designs/{design_id}/prints.zip", app.DownloadPrintFiles)
			r.Post("/designs/{design_id}/export", app.ExportDesign)
		})
	})

	return r
}
