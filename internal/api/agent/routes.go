package agent

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers agent routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/agent", func(r chi.Router) {
		r.Post("/{id}/message", h.SendMessage)
		r.Post("/{id}/stream", h.StreamMessage)
	})
}
