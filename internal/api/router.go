package api

import (
	"net/http"

	mw "github.com/collabohq/collabo/internal/api/middleware"
	"github.com/collabohq/collabo/internal/api/response"
	"github.com/go-chi/chi/v5"
)

// Dependencies holds all handler and middleware dependencies for the router.
type Dependencies struct {
	Auth      *mw.Auth
	RateLimit *mw.RateLimit

	HealthHandler http.HandlerFunc

	AnalyzeHandler   http.HandlerFunc
	StrategyHandler  http.HandlerFunc
	ActionsHandler   http.HandlerFunc
	SummarizeHandler http.HandlerFunc

	CreateContact  http.HandlerFunc
	ListContacts   http.HandlerFunc
	GetContact     http.HandlerFunc
	UpdateContact  http.HandlerFunc
	DeleteContact  http.HandlerFunc
	ContactHistory http.HandlerFunc
	LatestAnalysis http.HandlerFunc

	CreateKeyHandler http.HandlerFunc
	ListKeysHandler  http.HandlerFunc
	RevokeKeyHandler http.HandlerFunc
}

// NewRouter builds the Chi router with middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Logger)
	r.Use(mw.Recovery)

	// Public health check
	r.Get("/api/v1/health", orNotImplemented(deps.HealthHandler))

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(deps.Auth.Authenticate)
		r.Use(deps.RateLimit.Limit)

		r.Post("/api/v1/analyze", orNotImplemented(deps.AnalyzeHandler))
		r.Post("/api/v1/strategy", orNotImplemented(deps.StrategyHandler))
		r.Post("/api/v1/actions", orNotImplemented(deps.ActionsHandler))
		r.Post("/api/v1/summarize", orNotImplemented(deps.SummarizeHandler))

		r.Post("/api/v1/contacts", orNotImplemented(deps.CreateContact))
		r.Get("/api/v1/contacts", orNotImplemented(deps.ListContacts))
		r.Get("/api/v1/contacts/{contactID}", orNotImplemented(deps.GetContact))
		r.Put("/api/v1/contacts/{contactID}", orNotImplemented(deps.UpdateContact))
		r.Delete("/api/v1/contacts/{contactID}", orNotImplemented(deps.DeleteContact))
		r.Get("/api/v1/contacts/{contactID}/analyses", orNotImplemented(deps.ContactHistory))
		r.Get("/api/v1/contacts/{contactID}/analyses/latest", orNotImplemented(deps.LatestAnalysis))

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(deps.Auth.RequireScope("admin"))

			r.Post("/api/v1/admin/keys", orNotImplemented(deps.CreateKeyHandler))
			r.Get("/api/v1/admin/keys", orNotImplemented(deps.ListKeysHandler))
			r.Delete("/api/v1/admin/keys/{keyID}", orNotImplemented(deps.RevokeKeyHandler))
		})
	})

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Endpoint not yet implemented", nil)
	}
}
