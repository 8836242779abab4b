// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arisathang/Stock-management/internal/ai"
	"github.com/arisathang/Stock-management/internal/api"
	"github.com/arisathang/Stock-management/internal/cache"
	"github.com/arisathang/Stock-management/internal/config"
	"github.com/arisathang/Stock-management/internal/repository/postgres"
	"github.com/arisathang/Stock-management/internal/service"
	"github.com/arisathang/Stock-management/internal/storage"
	"github.com/arisathang/Stock-management/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	stockRepo := postgres.NewStockRepository(db)
	pricingRepo := postgres.NewPricingRepository(db)
	invoiceRepo := postgres.NewInvoiceRepository(db)

	pricingCache, err := cache.NewPricingCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("pricing cache unavailable, running without it")
		pricingCache = cache.NewNoopPricingCache()
	}
	stockCache, err := cache.NewStockStatusCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("stock status cache unavailable, running without it")
		stockCache = cache.NewNoopStockStatusCache()
	}

	// Model-backed strategies only come up when an API key is configured;
	// the rule-based strategy always works.
	var (
		aiQty  *ai.QuantityAdvisor
		aiPlan *ai.AllocationAdvisor
	)
	if cfg.AI.APIKey != "" {
		gemini, err := ai.NewGeminiClient(context.Background(), cfg.AI)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("failed to initialize model client")
		}
		aiQty = ai.NewQuantityAdvisor(gemini, stockRepo)
		aiPlan = ai.NewAllocationAdvisor(gemini)
	} else {
		logger.Log.Info().Msg("no model API key configured, model strategies disabled")
	}

	var archiver *storage.InvoiceArchiver
	if cfg.Storage.Enabled {
		store, err := storage.NewMinioClient(cfg.Storage)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("failed to initialize object storage")
		}
		archiver = storage.NewInvoiceArchiver(store)
	}

	services := &api.Services{
		StockService:    service.NewStockService(stockRepo, stockCache),
		PlanningService: service.NewPlanningService(stockRepo, pricingRepo, invoiceRepo, pricingCache, aiQty, aiPlan, archiver),
	}

	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Log.Info().Msg("server exiting")
}
