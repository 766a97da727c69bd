// Package docs serves the API documentation: a Swagger UI rendering
// the hand-maintained OpenAPI spec in docs/swagger.yaml.
package docs

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// specFile is resolved relative to the process working directory.
const specFile = "docs/swagger.yaml"

// RegisterRoutes mounts the Swagger UI under /docs and the spec it
// renders next to it.
func RegisterRoutes(r chi.Router) {
	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/docs/index.html", http.StatusFound)
	})

	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/swagger.yaml"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	r.Get("/docs/swagger.yaml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, specFile)
	})
}
