package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/costsheet-erp/costsheet/internal/auth"
	"github.com/costsheet-erp/costsheet/internal/fxrate"
	"github.com/costsheet-erp/costsheet/internal/masterdata"
	"github.com/costsheet-erp/costsheet/internal/quotation"
	"github.com/costsheet-erp/costsheet/internal/shared"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	SessionManager    *shared.SessionManager
	AuthHandler       *auth.Handler
	MasterDataHandler *masterdata.Handler
	QuotationHandler  *quotation.Handler
	FXHandler         *fxrate.Handler
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	params.AuthHandler.MountRoutes(r)

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.RequireSession)
		params.MasterDataHandler.MountRoutes(r)
		params.QuotationHandler.MountRoutes(r)
		params.FXHandler.MountRoutes(r)
	})

	return r
}
