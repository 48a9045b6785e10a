package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	agentapi "github.com/futig/legal-assistant/internal/api/agent"
	conversationapi "github.com/futig/legal-assistant/internal/api/conversation"
	"github.com/futig/legal-assistant/internal/api/docs"
	documentapi "github.com/futig/legal-assistant/internal/api/document"
	"github.com/futig/legal-assistant/internal/api/middleware"
)

// Handlers groups everything the router serves
type Handlers struct {
	Conversation *conversationapi.Handler
	Agent        *agentapi.Handler
	Document     *documentapi.Handler
}

// SetupRouter creates and configures the HTTP router. requestTimeout bounds a
// whole turn, retries included.
func SetupRouter(handlers Handlers, requestTimeout time.Duration, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS)
	r.Use(chimiddleware.Timeout(requestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	})

	docs.RegisterRoutes(r)

	conversationapi.RegisterRoutes(r, handlers.Conversation)
	agentapi.RegisterRoutes(r, handlers.Agent)
	documentapi.RegisterRoutes(r, handlers.Document)

	return r
}
