package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	ingestHttp "usage-metrics-service/internal/ingest/adapters/http/fiber"
	ingestRepoPg "usage-metrics-service/internal/ingest/adapters/postgres"
	ingestUsecase "usage-metrics-service/internal/ingest/core/usecase"

	pipelineHttp "usage-metrics-service/internal/pipeline/adapters/http/fiber"
	pipelinePg "usage-metrics-service/internal/pipeline/adapters/postgres"
	pipelineUsecase "usage-metrics-service/internal/pipeline/core/usecase"

	reportsHttp "usage-metrics-service/internal/reports/adapters/http/fiber"
	reportsRepoPg "usage-metrics-service/internal/reports/adapters/postgres"
	reportsUsecase "usage-metrics-service/internal/reports/core/usecase"

	"usage-metrics-service/internal/platform/config"
	"usage-metrics-service/internal/platform/logging"
	"usage-metrics-service/internal/platform/metrics"

	_ "usage-metrics-service/docs"
)

// @title Usage Metrics Service
// @version 1.0
// @description Raw usage ingest, the metrics pipeline and derived reports.
// @BasePath /
func main() {
	// Config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	// DB connection
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		logging.Error().Err(err).Msg("failed to open postgres")
		os.Exit(1)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		logging.Error().Err(err).Msg("failed to ping postgres")
		os.Exit(1)
	}

	// Adapter-level DB wrappers
	ingestDB := ingestRepoPg.NewSQLDB(db, cfg.Database.QueryTimeout)
	pipelineDB := pipelinePg.NewSQLDB(db)
	reportsDB := reportsRepoPg.NewSQLDB(db, cfg.Database.QueryTimeout)

	// Repositories
	rawRepository := ingestRepoPg.NewRawRecordRepository(ingestDB)
	rawSource := pipelinePg.NewRawSource(pipelineDB)
	reportSink := pipelinePg.NewReportSink(pipelineDB)
	reportRepository := reportsRepoPg.NewReportRepository(reportsDB)

	// Usecases
	storeRawUC := ingestUsecase.NewStoreRawRecordsUseCase(rawRepository, cfg.Pipeline.MaxBatchSize)
	runPipelineUC := pipelineUsecase.NewRunPipelineUseCase(rawSource, pipelineUsecase.Options{
		Workers:     cfg.Pipeline.Workers,
		KnownTitles: cfg.Pipeline.KnownTitles,
	}, reportSink)
	getReportsUC := reportsUsecase.NewGetReportsUseCase(reportRepository)

	// HTTP (Fiber) app + handlers
	app := fiber.New(fiber.Config{
		AppName:               "usage-metrics-service",
		BodyLimit:             cfg.Server.BodyLimitMB * 1024 * 1024,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		DisableStartupMessage: true,
	})
	app.Use(metrics.FiberMiddleware())

	// ingest endpoints
	ingestHandler := ingestHttp.NewIngestHandler(storeRawUC)
	app.Post("/raw/users", ingestHandler.CreateUsers)
	app.Post("/raw/firms", ingestHandler.CreateFirms)
	app.Post("/raw/events", ingestHandler.CreateEvents)

	// pipeline endpoints
	pipelineHandler := pipelineHttp.NewPipelineHandler(runPipelineUC)
	app.Post("/pipeline/run", pipelineHandler.RunPipeline)

	// report endpoints
	reportsHandler := reportsHttp.NewReportsHandler(getReportsUC)
	app.Get("/reports/engagement", reportsHandler.GetEngagement)
	app.Get("/reports/cohorts", reportsHandler.GetCohorts)
	app.Get("/reports/firm-health", reportsHandler.GetFirmHealth)
	app.Get("/reports/event-performance", reportsHandler.GetEventPerformance)

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Prometheus
	app.Get("/internal/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Graceful shutdown
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		if err := app.Listen(addr); err != nil {
			logging.Error().Err(err).Msg("fiber stopped")
		}
	}()

	logging.Info().Str("addr", addr).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	logging.Info().Msg("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logging.Error().Err(err).Msg("fiber shutdown error")
	}

	logging.Info().Msg("server exiting")
}
