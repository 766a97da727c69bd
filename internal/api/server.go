package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/tactohq/ingest-backend/internal/api/docs"
	filesapi "github.com/tactohq/ingest-backend/internal/api/files"
	ingestapi "github.com/tactohq/ingest-backend/internal/api/ingest"
	"github.com/tactohq/ingest-backend/internal/api/middleware"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router. Ingestion
// endpoints get a long timeout: a batch of PDFs can spend minutes in
// the extraction API alone.
func SetupRouter(ingestHandler *ingestapi.Handler, filesHandler *filesapi.Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)   // Recover from panics
	r.Use(chimiddleware.RequestID)   // Add request ID
	r.Use(middleware.Logger(logger)) // Log requests
	r.Use(middleware.CORS)           // Handle CORS

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(chimiddleware.Timeout(5 * time.Minute))
			ingestapi.RegisterRoutes(r, ingestHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(chimiddleware.Timeout(60 * time.Second))
			filesapi.RegisterRoutes(r, filesHandler)
		})
	})

	return r
}
