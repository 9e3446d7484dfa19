package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/atelieamado/backoffice-api/api/routes"
	"github.com/atelieamado/backoffice-api/internal/orders"
	"github.com/atelieamado/backoffice-api/internal/patients"
	"github.com/atelieamado/backoffice-api/internal/producers"
	"github.com/atelieamado/backoffice-api/internal/stock"
	"github.com/atelieamado/backoffice-api/pkg/config"
	"github.com/atelieamado/backoffice-api/pkg/db"
	"github.com/atelieamado/backoffice-api/pkg/logger"
	"github.com/atelieamado/backoffice-api/pkg/metrics"
	"github.com/atelieamado/backoffice-api/pkg/migrate"
	"github.com/atelieamado/backoffice-api/pkg/redis"
	"github.com/atelieamado/backoffice-api/pkg/storage/assets"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	resolver := assets.NewResolver(cfg.Storage)

	ordersSvc, err := orders.NewService(orders.NewRepository(dbClient.DB()), resolver, cfg.Lists.OrdersPerPage)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}
	stockSvc, err := stock.NewService(stock.NewRepository(dbClient.DB()), resolver, cfg.Lists.StockPerPage)
	if err != nil {
		logg.Error(context.Background(), "failed to create stock service", err)
		os.Exit(1)
	}
	producersSvc, err := producers.NewService(
		producers.NewRepository(dbClient.DB()),
		redisClient,
		resolver,
		logg,
		cfg.Lists.ProducerCacheTTL,
		cfg.Lists.ProducerImagesPerPage,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create producers service", err)
		os.Exit(1)
	}
	patientsSvc, err := patients.NewService(patients.NewRepository(dbClient.DB()), cfg.Lists.PatientsPerPage)
	if err != nil {
		logg.Error(context.Background(), "failed to create patients service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	reqMetrics := metrics.NewRequestMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:       cfg,
			Logger:       logg,
			DBPinger:     dbClient,
			RedisPinger:  redisClient,
			Metrics:      reqMetrics,
			Registry:     registry,
			OrdersSvc:    ordersSvc,
			StockSvc:     stockSvc,
			ProducersSvc: producersSvc,
			PatientsSvc:  patientsSvc,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
