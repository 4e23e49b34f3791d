package masterdata

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/costsheet-erp/costsheet/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) Customers(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.Customers(r.Context()))
}

func (h *Handler) Currencies(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.Currencies(r.Context()))
}

func (h *Handler) Ports(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.Ports(r.Context()))
}

func (h *Handler) OverheadRates(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.OverheadRates(r.Context()))
}

func (h *Handler) FactoryExpense(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]float64{
		"expense_rate": h.service.FactoryExpenseRate(r.Context()),
	})
}

func (h *Handler) ShippingTiers(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.ShippingTiers(r.Context()))
}

// ShippingRate resolves the tiered per-container rate for ?qty=N.
func (h *Handler) ShippingRate(w http.ResponseWriter, r *http.Request) {
	qty, err := strconv.Atoi(r.URL.Query().Get("qty"))
	if err != nil || qty < 1 {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "qty must be a positive integer")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]float64{
		"price_per_container": h.service.ShippingRate(r.Context(), qty),
	})
}

func (h *Handler) RMProducts(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.RMProducts(r.Context()))
}

// RMPrice resolves the temporally matched raw-material price for
// ?product=...&month=Mar.25.
func (h *Handler) RMPrice(w http.ResponseWriter, r *http.Request) {
	product := r.URL.Query().Get("product")
	month := r.URL.Query().Get("month")
	if product == "" || month == "" {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "product and month are required")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]float64{
		"price": h.service.RMBasePrice(r.Context(), product, month),
	})
}
