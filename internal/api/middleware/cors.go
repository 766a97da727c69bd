package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows browser clients to call the API from any origin. The
// header list matches what the upload frontend actually sends.
func CORS(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "X-Client-Info", "Apikey", "Content-Type"},
		MaxAge:         300,
	})(next)
}
