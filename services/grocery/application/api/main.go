package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/pricetrack/services/grocery/application/handlers"
	appsvcs "github.com/ghuser/pricetrack/services/grocery/application/services"
)

// GroceryRoutes registers grocery endpoints on the provided chi router.
// With hideInternal set, 5xx responses carry only the status text.
func GroceryRoutes(r chi.Router, svcs *appsvcs.Services, hideInternal bool) {
	r.Group(func(r chi.Router) {
		r.Route("/items", func(r chi.Router) {
			r.Get("/", handlers.NewListItemsHandler(svcs).Execute)
			r.Post("/", handlers.NewPostItemHandler(svcs, hideInternal).Execute)
			r.Post("/undo-delete", handlers.NewUndoDeleteHandler(svcs, hideInternal).Execute)
			r.Post("/undo-price", handlers.NewUndoPriceHandler(svcs, hideInternal).Execute)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", handlers.NewGetItemHandler(svcs, hideInternal).Execute)
				r.Delete("/", handlers.NewDeleteItemHandler(svcs, hideInternal).Execute)
				r.Post("/prices", handlers.NewPostPriceHandler(svcs, hideInternal).Execute)
			})
		})
		r.Get("/comparison", handlers.NewGetComparisonHandler(svcs, hideInternal).Execute)
		r.Get("/notifications", handlers.NewGetNotificationsHandler(svcs).Execute)
	})
}
