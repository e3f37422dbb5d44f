package rest

import (
	"net/http"

	"github.com/asmelnikov/docgen-backend/internal/transport/middleware"
)

// Handlers bundles the endpoint handlers the router mounts.
type Handlers struct {
	Health    *HealthHandler
	Auth      *AuthHandler
	Fields    *FieldsHandler
	Templates *TemplatesHandler
	Documents *DocumentsHandler
}

// NewRouter mounts all REST routes. Health probes and login are public;
// everything else requires an authenticated user (the Auth middleware must
// run before the returned handler for that to hold).
func NewRouter(h Handlers) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("POST /auth/login", h.Auth.Login)

	protected := func(fn http.HandlerFunc) http.Handler {
		return middleware.RequireUser(fn)
	}

	mux.Handle("POST /auth/register", protected(h.Auth.Register))

	mux.Handle("GET /fields", protected(h.Fields.List))
	mux.Handle("POST /fields", protected(h.Fields.Create))

	mux.Handle("GET /templates", protected(h.Templates.List))
	mux.Handle("POST /templates", protected(h.Templates.Create))
	mux.Handle("GET /templates/{id}", protected(h.Templates.Get))
	mux.Handle("GET /templates/{id}/placeholders", protected(h.Templates.ExtractFields))
	mux.Handle("GET /templates/{id}/fields", protected(h.Templates.ListDocumentFields))
	mux.Handle("POST /templates/{id}/fields", protected(h.Templates.CreateDocumentField))
	mux.Handle("GET /templates/{id}/columns", protected(h.Templates.ListTableColumns))
	mux.Handle("POST /templates/{id}/columns", protected(h.Templates.CreateTableColumn))
	mux.Handle("GET /templates/{id}/documents", protected(h.Documents.List))
	mux.Handle("POST /templates/{id}/documents", protected(h.Documents.Generate))

	mux.Handle("GET /documents/{id}", protected(h.Documents.Get))
	mux.Handle("GET /documents/{id}/file", protected(h.Documents.Download))

	return mux
}
