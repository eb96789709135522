package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"stocktake/internal/config"
	"stocktake/internal/repository/mongodb"
	"stocktake/internal/scheduler"
	"stocktake/internal/server/handlers"
	"stocktake/internal/server/router"
	catalogsvc "stocktake/internal/service/catalog"
	inventorysvc "stocktake/internal/service/inventory"
	reportingsvc "stocktake/internal/service/reporting"
	"stocktake/pkg/clients/alert"
	"stocktake/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName, baseLogger.Named("repo.mongodb"))
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	catalogSvc := catalogsvc.NewService(mongoRepo, baseLogger.Named("svc.catalog"))
	inventorySvc := inventorysvc.NewService(mongoRepo, baseLogger.Named("svc.inventory"))
	reportingSvc := reportingsvc.NewService(mongoRepo, cfg.Alert.LowStockThreshold, baseLogger.Named("svc.reporting"))

	var alertClient alert.Client
	if cfg.Alert.WebhookURL != "" {
		alertClient = alert.NewClient(cfg.Alert)
		baseLogger.Info("low stock alert webhook enabled")
	} else {
		baseLogger.Warn("alert webhook url missing, low stock alerts disabled")
	}

	productHandler := handlers.NewProductHandler(catalogSvc, baseLogger.Named("handlers.products"))
	inventoryHandler := handlers.NewInventoryHandler(inventorySvc, baseLogger.Named("handlers.inventories"))
	dashboardHandler := handlers.NewDashboardHandler(reportingSvc, baseLogger.Named("handlers.dashboard"))
	engine := router.New(productHandler, inventoryHandler, dashboardHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, reportingSvc, alertClient, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
