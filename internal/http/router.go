package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	authpkg "github.com/kritchanat/dormdesk/internal/auth"
	"github.com/kritchanat/dormdesk/internal/http/announcement"
	"github.com/kritchanat/dormdesk/internal/http/auth"
	"github.com/kritchanat/dormdesk/internal/http/billing"
	"github.com/kritchanat/dormdesk/internal/http/importcsv"
	"github.com/kritchanat/dormdesk/internal/http/room"
	"github.com/kritchanat/dormdesk/internal/http/settings"
	"github.com/kritchanat/dormdesk/internal/http/staff"
	"github.com/kritchanat/dormdesk/internal/http/tenant"
	"github.com/kritchanat/dormdesk/internal/user"
)

type Handlers struct {
	Auth          *auth.Handler
	Rooms         *room.Handler
	Tenants       *tenant.Handler
	Billing       *billing.Handler
	Staff         *staff.Handler
	Settings      *settings.Handler
	Announcements *announcement.Handler
	Import        *importcsv.Handler
}

func New(tokens *authpkg.Tokens, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	staffOnly := authpkg.RequireRole(user.RoleAdmin, user.RoleStaff)
	adminOnly := authpkg.RequireRole(user.RoleAdmin)

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Auth.PublicRoutes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(tokens.RequireAuth)

			h.Auth.Routes(r)

			r.Route("/billing", func(r chi.Router) {
				h.Billing.Routes(r)

				r.Group(func(r chi.Router) {
					r.Use(staffOnly)
					r.Use(middleware.AllowContentType("application/json"))
					h.Billing.StaffRoutes(r)
				})
			})

			r.Route("/announcements", func(r chi.Router) {
				h.Announcements.Routes(r)

				r.Group(func(r chi.Router) {
					r.Use(staffOnly)
					r.Use(middleware.AllowContentType("application/json"))
					h.Announcements.StaffRoutes(r)
				})
			})

			r.Group(func(r chi.Router) {
				r.Use(staffOnly)

				r.Route("/rooms", func(r chi.Router) {
					r.Use(middleware.AllowContentType("application/json"))
					h.Rooms.Routes(r)
				})

				r.Route("/tenants", func(r chi.Router) {
					r.Use(middleware.AllowContentType("application/json"))
					h.Tenants.Routes(r)
				})

				r.Route("/import", h.Import.Routes)
			})

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Use(middleware.AllowContentType("application/json"))

				r.Route("/staff", h.Staff.Routes)
				r.Route("/settings", h.Settings.Routes)
				r.Route("/users", h.Auth.UserRoutes)
			})
		})
	})

	return router
}
