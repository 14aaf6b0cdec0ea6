package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"

	healthcontroller "github.com/quotedesk/quotedesk-backend/api/controllers/health"
	quotescontroller "github.com/quotedesk/quotedesk-backend/api/controllers/quotes"
	"github.com/quotedesk/quotedesk-backend/api/routes"
	"github.com/quotedesk/quotedesk-backend/internal/artifacts"
	"github.com/quotedesk/quotedesk-backend/internal/quotepdf"
	"github.com/quotedesk/quotedesk-backend/internal/quotes"
	"github.com/quotedesk/quotedesk-backend/internal/settings"
	"github.com/quotedesk/quotedesk-backend/pkg/config"
	"github.com/quotedesk/quotedesk-backend/pkg/db"
	"github.com/quotedesk/quotedesk-backend/pkg/logger"
	"github.com/quotedesk/quotedesk-backend/pkg/metrics"
	"github.com/quotedesk/quotedesk-backend/pkg/migrate"
	"github.com/quotedesk/quotedesk-backend/pkg/storage/gcs"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Money fields serialize as JSON numbers, matching what clients send.
	decimal.MarshalJSONWithoutQuotes = true

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logg := logger.New(logger.Options{
		ServiceName: "quotedesk-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(ctx, "api exited", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) error {
	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() { _ = dbClient.Close() }()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	gcsClient, err := gcs.NewClient(ctx, cfg.GCS, cfg.GCP, logg)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	documentMetrics := metrics.NewDocumentMetrics(registry)

	quoteRepo := quotes.NewRepo(dbClient)
	settingsService := settings.NewService(dbClient, cfg.Pricing)
	renderer := quotepdf.NewRenderer(cfg.Document)
	publisher := artifacts.NewPublisher(gcsClient, quoteRepo, cfg.GCS, logg, documentMetrics)

	quotesHandler := quotescontroller.NewHandler(
		settingsService, quoteRepo, renderer, publisher, logg, documentMetrics)
	healthHandler := healthcontroller.NewHandler(logg, map[string]healthcontroller.Pinger{
		"database": dbClient,
		"storage":  gcsClient,
	})

	router := routes.New(routes.Deps{
		Config:   cfg,
		Logger:   logg,
		Quotes:   quotesHandler,
		Health:   healthHandler,
		Registry: registry,
	})

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(ctx, fmt.Sprintf("listening on %s", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logg.Info(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
