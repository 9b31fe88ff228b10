package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"dupfinder-ai/internal/handlers"
	"dupfinder-ai/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	TicketService service.TicketService
	VectorStore   handlers.CollectionChecker
	Collection    string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	analyzeHandler := handlers.NewAnalyzeHandler(deps.TicketService)
	similarHandler := handlers.NewSimilarHandler(deps.TicketService)
	indexHandler := handlers.NewIndexHandler(deps.TicketService)
	healthHandler := handlers.NewHealthHandler(deps.VectorStore, deps.Collection)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/analyze", analyzeHandler)
		r.Method(http.MethodGet, "/tickets/{key}/similar", similarHandler)
		r.Method(http.MethodPost, "/tickets/{key}/index", indexHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
