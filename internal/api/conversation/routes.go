package conversation

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers conversation routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/conversations", func(r chi.Router) {
		r.Post("/", h.CreateConversation)
		r.Get("/", h.ListConversations)
		r.Get("/{id}", h.GetConversation)
		r.Delete("/{id}", h.DeleteConversation)
		r.Get("/{id}/messages", h.ListMessages)
	})
}
