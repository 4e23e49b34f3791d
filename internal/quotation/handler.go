package quotation

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/costsheet-erp/costsheet/internal/platform/httpx"
)

type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) decodeSave(r *http.Request) (*SaveRequest, string) {
	var req SaveRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		return nil, "invalid JSON body"
	}
	if err := h.validate.Struct(req); err != nil {
		return nil, err.Error()
	}
	return &req, ""
}

// Preview calculates the cost sheet without saving it.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	req, detail := h.decodeSave(r)
	if req == nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", detail)
		return
	}
	resp, err := h.service.Preview(r.Context(), *req)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// Save calculates and persists the cost sheet. A blank doc_no gets
// the next free number for the document date.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	req, detail := h.decodeSave(r)
	if req == nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", detail)
		return
	}
	resp, err := h.service.Save(r.Context(), *req)
	if err != nil {
		h.logger.Error("save cost sheet failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	docNo := chi.URLParam(r, "docNo")
	doc, err := h.service.Get(r.Context(), docNo)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "no cost sheet with doc_no "+docNo)
			return
		}
		h.logger.Error("get cost sheet failed", slog.String("doc_no", docNo), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, doc)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	items, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("list cost sheets failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	docNo := chi.URLParam(r, "docNo")
	if err := h.service.Delete(r.Context(), docNo); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "no cost sheet with doc_no "+docNo)
			return
		}
		h.logger.Error("delete cost sheet failed", slog.String("doc_no", docNo), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"deleted": docNo})
}

// NextDocNumber returns the next free document number for ?date=YYYY-MM-DD
// (today when omitted).
func (h *Handler) NextDocNumber(w http.ResponseWriter, r *http.Request) {
	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}
	docNo, err := h.service.NextDocNumber(r.Context(), date)
	if err != nil {
		h.logger.Error("next doc number failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"doc_no": docNo})
}
