package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"iqr-control-backend/config"
	"iqr-control-backend/models"
	"iqr-control-backend/routes"
	"iqr-control-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Connect to PostgreSQL (and Redis when configured), migrate the schema
if database.auto_migrate is set, seed the first admin user, start the
subscription reminder schedule and serve the API until SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := config.Log
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.ConnectDB(cfg.Database, logger)
	if err != nil {
		return err
	}
	if cfg.Database.AutoMigrate {
		if err := models.AutoMigrate(db); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	users := services.NewUserService(db, logger)
	if _, err := users.SeedAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}

	redisClient := config.ConnectRedis(cfg.Redis, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}
	cache := services.NewStatsCache(redisClient, cfg.Redis.StatsTTL, logger)

	storage, err := services.NewReceiptStorage(ctx, cfg.Upload, cfg.Storage, logger)
	if err != nil {
		return fmt.Errorf("receipt storage: %w", err)
	}

	var notifier services.Notifier
	if cfg.Twilio.AccountSID != "" && cfg.Twilio.AuthToken != "" {
		notifier = services.NewTwilioNotifier(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.FromNumber, cfg.Twilio.WhatsApp)
	}

	handlers := routes.NewHandlers(routes.Dependencies{
		Config:   cfg,
		DB:       db,
		Cache:    cache,
		Storage:  storage,
		Notifier: notifier,
		Logger:   logger,
	})

	if cfg.Scheduler.Enabled {
		if err := handlers.ReminderService.StartScheduler(cfg.Scheduler.Cron); err != nil {
			return err
		}
	}

	router := routes.SetupRouter(cfg, handlers, logger)
	for _, route := range router.Routes() {
		logger.Debug("route", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	handlers.ReminderService.StopScheduler(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("server stopped")
	return nil
}
