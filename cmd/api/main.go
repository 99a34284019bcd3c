package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/openlmis/fulfillment-backend/api/routes"
	"github.com/openlmis/fulfillment-backend/internal/export"
	"github.com/openlmis/fulfillment-backend/internal/orders"
	"github.com/openlmis/fulfillment-backend/internal/referencedata"
	"github.com/openlmis/fulfillment-backend/internal/templates"
	"github.com/openlmis/fulfillment-backend/internal/transfer"
	"github.com/openlmis/fulfillment-backend/pkg/config"
	"github.com/openlmis/fulfillment-backend/pkg/db"
	"github.com/openlmis/fulfillment-backend/pkg/logger"
	"github.com/openlmis/fulfillment-backend/pkg/metrics"
	"github.com/openlmis/fulfillment-backend/pkg/migrate"
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

	refClient, err := referencedata.NewClient(
		cfg.ReferenceData.BaseURL,
		referencedata.WithTimeout(cfg.ReferenceData.Timeout),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create reference data client", err)
		os.Exit(1)
	}

	exporter := export.NewEngine(refClient, export.WithIncludeZeroQuantity(cfg.Export.IncludeZeroQuantity))

	registry := prometheus.NewRegistry()
	transferMetrics := metrics.NewTransferMetrics(registry)

	transferRepo := transfer.NewRepository(dbClient.DB())
	transferService, err := transfer.NewService(transfer.ServiceParams{
		Repo:       transferRepo,
		Facilities: refClient,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create transfer properties service", err)
		os.Exit(1)
	}

	coordinator, err := transfer.NewCoordinator(transfer.CoordinatorParams{
		Properties:     transferRepo,
		Exporter:       exporter,
		Storage:        transfer.ArtifactStorage{},
		Sender:         transfer.NewProtocolSender(cfg.Transfer.ConnectTimeout),
		Metrics:        transferMetrics,
		Log:            logg,
		FTPSendEnabled: cfg.Transfer.FTPSendEnabled,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create delivery coordinator", err)
		os.Exit(1)
	}

	templateService, err := templates.NewService(templates.ServiceParams{
		Repo: templates.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create template service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orders.ServiceParams{
		Repo:        orders.NewRepository(dbClient.DB()),
		Templates:   templateService,
		Coordinator: coordinator,
		Exporter:    exporter,
		Codes:       orders.NewCodeGenerator(cfg.OrderCode),
		Log:         logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

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
		Handler: routes.NewRouter(routes.RouterParams{
			Config:    cfg,
			Log:       logg,
			Orders:    orderService,
			Templates: templateService,
			Transfer:  transferService,
			Metrics:   registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
