package masterdata

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/masterdata", func(r chi.Router) {
		r.Get("/customers", h.Customers)
		r.Get("/currencies", h.Currencies)
		r.Get("/ports", h.Ports)
		r.Get("/overheads", h.OverheadRates)
		r.Get("/factory-expense", h.FactoryExpense)
		r.Get("/shipping-tiers", h.ShippingTiers)
		r.Get("/shipping-rate", h.ShippingRate)
		r.Get("/rm-products", h.RMProducts)
		r.Get("/rm-price", h.RMPrice)
	})
}
