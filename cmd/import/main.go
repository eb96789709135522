package main

import (
	"context"
	"flag"
	"time"

	"go.uber.org/zap"

	"stocktake/internal/config"
	"stocktake/internal/repository/mongodb"
	"stocktake/internal/repository/sheets"
	catalogsvc "stocktake/internal/service/catalog"
	"stocktake/pkg/logger"
)

// Bulk-imports products from a Google Sheet into the catalog, upserting
// by product name.
func main() {
	envFile := flag.String("env", "", "optional path to a .env file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	if err := cfg.ValidateSheets(); err != nil {
		baseLogger.Fatal("spreadsheet configuration incomplete", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	sheetRepo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, baseLogger.Named("repo.sheets"))
	if err != nil {
		baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
	}

	mongoRepo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName, baseLogger.Named("repo.mongodb"))
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	rows, err := sheetRepo.ReadProducts(ctx)
	if err != nil {
		baseLogger.Fatal("failed to read product rows", zap.Error(err))
	}

	catalogSvc := catalogsvc.NewService(mongoRepo, baseLogger.Named("svc.catalog"))
	result, err := catalogSvc.Import(ctx, rows)
	if err != nil {
		baseLogger.Fatal("import failed", zap.Error(err))
	}

	baseLogger.Info("import completed",
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped))
}
