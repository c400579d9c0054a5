package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/futbol5/config"
	"github.com/Dosada05/futbol5/handlers"
	"github.com/Dosada05/futbol5/hub"
	"github.com/Dosada05/futbol5/middleware"
	"github.com/Dosada05/futbol5/routes"
	"github.com/Dosada05/futbol5/services"
	"github.com/Dosada05/futbol5/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

const shutdownTimeout = 15 * time.Second

// @title Fobal API
// @version 1.0
// @description Weekly 5-a-side soccer organizer.
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		slog.Error("application failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("storage", cfg.StorageDriver),
		slog.String("mail", cfg.MailDriver),
		slog.String("time_zone", cfg.Location.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, closer, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closer.Close(); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		} else {
			logger.Info("storage closed")
		}
	}()

	// nil unless R2 is fully configured; avatar uploads then answer 503
	var uploader storage.FileUploader
	r2Config := storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	}
	if r2Config.Enabled() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, r2Config)
		if err != nil {
			return fmt.Errorf("failed to initialize Cloudflare R2 uploader: %w", err)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	}

	var mailer services.Mailer
	switch cfg.MailDriver {
	case config.MailDriverLog:
		mailer = services.NewLogMailer(logger)
	default:
		mailer = services.NewEmailService(cfg)
	}
	builder, err := services.NewMessageBuilder(cfg.MailFrom, cfg.BaseURL, cfg.Location)
	if err != nil {
		return err
	}

	wsHub := hub.NewHub(logger)
	go wsHub.Run(ctx)

	notifier := services.NewNotificationService(mailer, builder, logger)
	playerService := services.NewPlayerService(repos.players, uploader, logger)
	matchService := services.NewMatchService(
		repos.matches,
		repos.matchPlayers,
		repos.guests,
		repos.players,
		notifier,
		wsHub,
		uploader,
		logger,
	)
	scheduleService := services.NewScheduleService(repos.schedules, repos.schedules, repos.matches)
	engine := services.NewSchedulingService(scheduleService, repos.matches, repos.players, logger)
	dashboardService := services.NewDashboardService(repos.matches, repos.players, matchService, playerService)
	authService := services.NewAuthService(cfg.AdminEmail, cfg.AdminPasswordHash)
	dailyJob := services.NewDailyJob(engine, matchService, notifier, wsHub, logger)

	if cfg.DailyTriggerEnabled {
		go dailyJob.Start(ctx, cfg.DailyTriggerTime, cfg.Location)
	}

	webHandler, err := handlers.NewWebHandler(dashboardService, matchService, cfg.Location)
	if err != nil {
		return fmt.Errorf("failed to parse page templates: %w", err)
	}

	router := chi.NewRouter()
	routes.SetupRoutes(router, routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService, cfg.JWTSecretKey),
		Player:    handlers.NewPlayerHandler(playerService),
		Match:     handlers.NewMatchHandler(matchService),
		Schedule:  handlers.NewScheduleHandler(scheduleService),
		Dashboard: handlers.NewDashboardHandler(dashboardService),
		Trigger:   handlers.NewTriggerHandler(dailyJob, cfg.Location),
		Web:       webHandler,
		WebSocket: handlers.NewWebSocketHandler(wsHub, matchService),
	}, routes.Options{
		JWTSecret:     []byte(cfg.JWTSecretKey),
		CORSOrigins:   cfg.CORSOrigins,
		PlayerSession: middleware.NewPlayerSession([]byte(cfg.JWTSecretKey), playerService, logger),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return err
		}
		logger.Info("server shutdown complete")
	}
	return nil
}
