package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/costsheet-erp/costsheet/internal/app"
	"github.com/costsheet-erp/costsheet/internal/auth"
	"github.com/costsheet-erp/costsheet/internal/fxrate"
	"github.com/costsheet-erp/costsheet/internal/masterdata"
	"github.com/costsheet-erp/costsheet/internal/platform/cache"
	"github.com/costsheet-erp/costsheet/internal/platform/db"
	"github.com/costsheet-erp/costsheet/internal/quotation"
	"github.com/costsheet-erp/costsheet/internal/shared"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "costsheet_session", cfg.SessionTTL, cfg.IsProduction())

	authService, err := auth.NewService(cfg.AdminUser, cfg.AdminPassword)
	if err != nil {
		logger.Error("init auth", slog.Any("error", err))
		os.Exit(1)
	}
	authHandler := auth.NewHandler(logger, authService, sessionManager)

	masterRepo := masterdata.NewRepository(pool)
	masterCache := masterdata.NewCache(redisClient, cfg.MasterCacheTTL)
	masterService := masterdata.NewService(masterRepo, masterCache, masterdata.BuiltinDefaults(), logger)
	masterHandler := masterdata.NewHandler(logger, masterService)

	quotationRepo := quotation.NewRepository(pool)
	quotationService := quotation.NewService(quotationRepo, masterService, logger)
	quotationHandler := quotation.NewHandler(logger, quotationService)

	fxClient := fxrate.NewClient(cfg.FXEndpoint, nil)
	fxHandler := fxrate.NewHandler(logger, fxClient)

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		SessionManager:    sessionManager,
		AuthHandler:       authHandler,
		MasterDataHandler: masterHandler,
		QuotationHandler:  quotationHandler,
		FXHandler:         fxHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Error("server exit", slog.Any("error", err))
		os.Exit(1)
	}
}
