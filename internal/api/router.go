// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterOptions configures the HTTP stack around the handlers.
type RouterOptions struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
}

// NewRouter builds the chi router:
// RequestID → RealIP → Logging → Recoverer → Timeout → CORS → routes.
func NewRouter(h *Handler, logger *slog.Logger, opts RouterOptions) http.Handler {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"http://localhost:5173"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, Logging(logger), middleware.Recoverer)
	r.Use(middleware.Timeout(opts.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Disposition", "Content-Length"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	RegisterRoutes(r, h)

	// Swagger UI served at /swagger/
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// RegisterRoutes mounts every API route on r.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/exams", func(r chi.Router) {
		r.Post("/", h.createExam)
		r.Get("/", h.listExams)
		r.Post("/regrade", h.regradeAll)

		r.Route("/{examID}", func(r chi.Router) {
			r.Get("/", h.getExam)
			r.Delete("/", h.deleteExam)
			r.Put("/details", h.updateExamDetails)
			r.Post("/grade", h.gradeExam)
			r.Post("/simulate", h.simulateExam)
		})
	})

	r.Route("/reports", func(r chi.Router) {
		r.Get("/consolidated", h.consolidated)
		r.Get("/consolidated.xlsx", h.consolidatedXLSX)
		r.Get("/timeline", h.timeline)
		r.Post("/analysis", h.analysis)
	})

	r.Get("/export", h.exportAll)
	r.Post("/import", h.importAll)
}
