package quotation

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/quotations", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Save)
		r.Post("/preview", h.Preview)
		r.Get("/next-number", h.NextDocNumber)
		r.Get("/{docNo}", h.Get)
		r.Delete("/{docNo}", h.Delete)
	})
}
