package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/toolhub/toolhub/internal/httpserver/deps"
	"github.com/toolhub/toolhub/internal/httpserver/handlers"
	"github.com/toolhub/toolhub/internal/httpserver/mw"
)

func init() { Register(registerAdmin) }

func registerAdmin(r chi.Router, d deps.Deps) {
	sub := r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger), mw.EnforceHost(d.AllowedHosts, d.Logger))
	sub.Post("/api/admin/tools", handlers.CreateTool(d))
	sub.Put("/api/admin/tools/{id}", handlers.UpdateTool(d))
	sub.Delete("/api/admin/tools/{id}", handlers.DeleteTool(d))
	sub.Post("/api/admin/icon", handlers.GenerateIcon(d))
}
