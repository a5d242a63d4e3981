package router

import (
	"naturekids/internal/handlers/booking"
	"naturekids/internal/handlers/catalog"
	"naturekids/internal/handlers/identity"
	"naturekids/internal/handlers/journey"
	"naturekids/internal/handlers/recommendation"
	"naturekids/internal/handlers/review"

	"github.com/go-chi/chi/v5"
)

const apiVersion = "/v1"

type mountable interface {
	Router(router chi.Router)
}

type DomainHandlers struct {
	Identity       identity.Handler
	Catalog        catalog.Handler
	Booking        booking.Handler
	Journey        journey.Handler
	Review         review.Handler
	Recommendation recommendation.Handler
}

// Routes are flat patterns, so mount order does not matter.
func (d *DomainHandlers) mounts() []mountable {
	return []mountable{&d.Identity, &d.Catalog, &d.Review, &d.Booking, &d.Journey, &d.Recommendation}
}

type Router struct {
	DomainHandlers DomainHandlers
}

func New(domainHandlers DomainHandlers) Router {
	return Router{DomainHandlers: domainHandlers}
}

// SetupRoutes mounts every domain under the versioned prefix.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Route(apiVersion, func(v chi.Router) {
		for _, handler := range r.DomainHandlers.mounts() {
			handler.Router(v)
		}
	})
}
