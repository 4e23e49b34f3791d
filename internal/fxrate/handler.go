package fxrate

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/costsheet-erp/costsheet/internal/platform/httpx"
)

type Handler struct {
	logger *slog.Logger
	client *Client
}

func NewHandler(logger *slog.Logger, client *Client) *Handler {
	return &Handler{logger: logger, client: client}
}

// Spot returns the latest THB quote for ?currency=USD|EUR|JPY, with an
// optional effective rate when ?discount= and ?premium= are supplied.
func (h *Handler) Spot(w http.ResponseWriter, r *http.Request) {
	currency := r.URL.Query().Get("currency")
	if currency == "" {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "currency is required")
		return
	}

	spot, err := h.client.Spot(r.Context(), currency)
	if err != nil {
		h.logger.Warn("spot rate fetch failed",
			slog.String("currency", currency), slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "Upstream Unavailable",
			"spot rate source unreachable, keep the previous rate")
		return
	}

	discount, _ := strconv.ParseFloat(r.URL.Query().Get("discount"), 64)
	premium, _ := strconv.ParseFloat(r.URL.Query().Get("premium"), 64)

	httpx.JSON(w, http.StatusOK, map[string]float64{
		"spot_rate":     spot,
		"exchange_rate": Effective(spot, discount, premium),
	})
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/fx/spot", h.Spot)
}
