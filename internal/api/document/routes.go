package document

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers document routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/documents", func(r chi.Router) {
		r.Get("/{id}", h.GetDocument)
		r.Post("/{id}/edit", h.EditDocument)
		r.Get("/{id}/export", h.ExportDocument)
	})
}
