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

	"github.com/hibiken/asynq"

	"github.com/ryanfelix147-netizen/GT/cmd/trackinggt/cli"
	"github.com/ryanfelix147-netizen/GT/internal/app"
	"github.com/ryanfelix147-netizen/GT/internal/auth"
	"github.com/ryanfelix147-netizen/GT/internal/dashboard"
	dashboardhttp "github.com/ryanfelix147-netizen/GT/internal/dashboard/http"
	"github.com/ryanfelix147-netizen/GT/internal/logistics"
	"github.com/ryanfelix147-netizen/GT/internal/observability"
	"github.com/ryanfelix147-netizen/GT/internal/platform/cache"
	"github.com/ryanfelix147-netizen/GT/internal/shared"
	"github.com/ryanfelix147-netizen/GT/internal/view"
	"github.com/ryanfelix147-netizen/GT/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	slog.SetDefault(logger)

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
	queueOpts := cache.QueueOpts(redisClient)

	if len(os.Args) > 1 && os.Args[1] == "jobs" {
		jobsCLI := cli.NewJobsCLI(queueOpts)
		defer jobsCLI.Close()
		if err := jobsCLI.Run(ctx, os.Args[2:], os.Stdout); err != nil {
			logger.Error("jobs command", slog.Any("error", err))
			os.Exit(1)
		}
		return
	}

	sessionManager := shared.NewSessionManager(redisClient, cfg.SessionCookie, cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()

	authHandler := auth.NewHandler(logger, auth.NewGate(), templates, sessionManager, csrfManager, metrics).
		WithLoginRateLimit(cfg.LoginRateLimit)

	tracker := logistics.NewTracker(redisClient)
	dataset := dashboard.StaticDataset(time.Now().In(cfg.Location()))
	dashboardHandler := dashboardhttp.NewHandler(logger, templates, csrfManager, dashboard.SVGCharts{}, dataset, tracker, cfg.Location())
	if cfg.LogisticsAsync {
		jobClient := jobs.NewClient(queueOpts)
		defer func() {
			if err := jobClient.Close(); err != nil {
				logger.Warn("job client close", slog.Any("error", err))
			}
		}()
		dashboardHandler.WithQueue(jobClient)
	}

	inspector := asynq.NewInspector(queueOpts)
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		SessionManager:   sessionManager,
		CSRFManager:      csrfManager,
		AuthHandler:      authHandler,
		DashboardHandler: dashboardHandler,
		JobHandler:       jobs.NewHandler(inspector, logger),
		Metrics:          metrics,
		Health: func(ctx context.Context) error {
			return cache.Ping(ctx, redisClient)
		},
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("timezone", cfg.Location().String()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
