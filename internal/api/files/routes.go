package files

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers file upload routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/files", func(r chi.Router) {
		r.Post("/", h.UploadFiles)
		r.Get("/", h.ListFiles)
		r.Delete("/{file_id}", h.DeleteFile)
	})
}
