package router

import (
	"folio/internal/handlers/about"
	"folio/internal/handlers/auth"
	"folio/internal/handlers/contact"
	"folio/internal/handlers/content"
	"folio/internal/handlers/counter"
	"folio/internal/handlers/event"
	"folio/internal/handlers/gallery"
	"folio/internal/handlers/home"
	"folio/internal/handlers/invite"
	"folio/internal/handlers/pricing"
	"folio/internal/handlers/project"
	"folio/internal/handlers/review"
	"folio/internal/handlers/storage"
	"folio/internal/handlers/user"
	"folio/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth    auth.Handler
	Home    home.Handler
	Gallery gallery.Handler
	Event   event.Handler
	Review  review.Handler
	Pricing pricing.Handler
	Project project.Handler
	About   about.Handler
	Counter counter.Handler
	Content content.Handler
	Contact contact.Handler
	Invite  invite.Handler
	User    user.Handler
	Storage storage.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthRole       middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup, r.AuthRole.Auth)
		r.DomainHandlers.Home.Router(routerGroup)
		r.DomainHandlers.Gallery.Router(routerGroup)
		r.DomainHandlers.Event.Router(routerGroup)
		r.DomainHandlers.Review.Router(routerGroup)
		r.DomainHandlers.Pricing.Router(routerGroup)
		r.DomainHandlers.Project.Router(routerGroup)
		r.DomainHandlers.About.Router(routerGroup)
		r.DomainHandlers.Counter.Router(routerGroup)
		r.DomainHandlers.Content.Router(routerGroup)
		r.DomainHandlers.Contact.Router(routerGroup)
		r.DomainHandlers.Invite.Router(routerGroup)

		routerGroup.Route("/admin", func(adminGroup chi.Router) {
			adminGroup.Use(r.AuthRole.APIKey, r.AuthRole.Auth, r.AuthRole.RBAC)

			r.DomainHandlers.Gallery.AdminRouter(adminGroup)
			r.DomainHandlers.Event.AdminRouter(adminGroup)
			r.DomainHandlers.Review.AdminRouter(adminGroup)
			r.DomainHandlers.Pricing.AdminRouter(adminGroup)
			r.DomainHandlers.Project.AdminRouter(adminGroup)
			r.DomainHandlers.About.AdminRouter(adminGroup)
			r.DomainHandlers.Counter.AdminRouter(adminGroup)
			r.DomainHandlers.Content.AdminRouter(adminGroup)
			r.DomainHandlers.Invite.AdminRouter(adminGroup)
			r.DomainHandlers.User.AdminRouter(adminGroup)
			r.DomainHandlers.Storage.AdminRouter(adminGroup)
		})
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthRole:       authRole,
	}
}
