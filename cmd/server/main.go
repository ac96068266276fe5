package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/Jakababa94/mandazi-metrics/internal/config"
	"github.com/Jakababa94/mandazi-metrics/internal/repository"
	"github.com/Jakababa94/mandazi-metrics/internal/repository/sheets"
	"github.com/Jakababa94/mandazi-metrics/internal/scheduler"
	"github.com/Jakababa94/mandazi-metrics/internal/server/handlers"
	"github.com/Jakababa94/mandazi-metrics/internal/server/router"
	authsvc "github.com/Jakababa94/mandazi-metrics/internal/service/auth"
	metricssvc "github.com/Jakababa94/mandazi-metrics/internal/service/metrics"
	productionsvc "github.com/Jakababa94/mandazi-metrics/internal/service/production"
	salessvc "github.com/Jakababa94/mandazi-metrics/internal/service/sales"
	"github.com/Jakababa94/mandazi-metrics/internal/store"
	"github.com/Jakababa94/mandazi-metrics/pkg/clients/notify"
	"github.com/Jakababa94/mandazi-metrics/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var docStore store.Store
	if cfg.MongoDB.URI == "memory" {
		docStore = store.NewMemory()
		baseLogger.Warn("using in-memory document store, data will not survive a restart")
	} else {
		mongoStore, err := store.NewMongo(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName, baseLogger.Named("repo.store"))
		if err != nil {
			baseLogger.Fatal("failed to init document store", zap.Error(err))
		}
		defer func() {
			if err := mongoStore.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close document store", zap.Error(err))
			}
		}()
		docStore = mongoStore
	}

	ingredients := repository.NewIngredients(docStore)
	recipes := repository.NewRecipes(docStore)
	batches := repository.NewBatches(docStore)
	salesRepo := repository.NewSales(docStore)
	fixedCosts := repository.NewFixedCosts(docStore)
	users := repository.NewUsers(docStore)

	authService := authsvc.NewService(users, cfg.Auth, baseLogger.Named("svc.auth"))
	productionService := productionsvc.NewService(recipes, ingredients, batches, baseLogger.Named("svc.production"))
	salesService := salessvc.NewService(salesRepo, batches, baseLogger.Named("svc.sales"))
	metricsService := metricssvc.NewService(salesRepo, batches, baseLogger.Named("svc.metrics"))

	var exporter sheets.Exporter
	if cfg.Sheets.Enabled() {
		exporter, err = sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		baseLogger.Info("sheets export enabled")
	} else {
		baseLogger.Warn("sheets settings missing, daily report export disabled")
	}

	var notifier notify.Client
	if cfg.Notify.Enabled() {
		notifier = notify.NewClient(cfg.Notify)
		baseLogger.Info("report webhook enabled")
	} else {
		baseLogger.Warn("report webhook missing, daily report notification disabled")
	}

	engine := router.New(router.Handlers{
		Auth:       handlers.NewAuthHandler(authService, baseLogger.Named("handlers.auth")),
		Ingredient: handlers.NewIngredientHandler(ingredients, baseLogger.Named("handlers.ingredients")),
		Recipe:     handlers.NewRecipeHandler(recipes, baseLogger.Named("handlers.recipes")),
		Batch:      handlers.NewBatchHandler(productionService, batches, baseLogger.Named("handlers.batches")),
		Sale:       handlers.NewSaleHandler(salesService, salesRepo, baseLogger.Named("handlers.sales")),
		FixedCost:  handlers.NewFixedCostHandler(fixedCosts, baseLogger.Named("handlers.fixedcosts")),
		Dashboard:  handlers.NewDashboardHandler(metricsService, baseLogger.Named("handlers.dashboard")),
	}, authService, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Reporting, metricsService, exporter, notifier, baseLogger.Named("scheduler"))
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
