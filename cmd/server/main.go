package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/huntrbrooks/Money-sub001/internal/app"
	"github.com/huntrbrooks/Money-sub001/internal/config"
	"github.com/huntrbrooks/Money-sub001/internal/handler"
	"github.com/huntrbrooks/Money-sub001/internal/middleware"
	"github.com/huntrbrooks/Money-sub001/internal/obs"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.IsDev() {
		logLevel = slog.LevelDebug
	}

	logOutput, closeLog, err := config.LogOutput(cfg.LogDir, cfg.LogMaxFiles)
	if err != nil {
		log.Fatalf("Failed to set up log output: %v", err)
	}
	defer closeLog()

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
		"remote_configured", cfg.RemoteConfigured(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}
	defer application.Close()

	obs.Init()

	loginLimiter := middleware.NewLimiterPool(cfg.LoginRatePerMinute, 10*time.Minute)
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				loginLimiter.Sweep()
			}
		}
	}()

	mux := handler.NewRouter(handler.RouterDeps{
		SiteConfig:    application.SiteConfig,
		Assistant:     application.Assistant,
		Content:       application.Content,
		Auth:          application.Auth,
		Assets:        application.Assets,
		LoginLimiter:  loginLimiter,
		Backend:       application.Objects.Backend(),
		SecureCookies: !cfg.IsDev(),
		Metrics:       obs.Handler(),
		Logger:        logger,
	})

	// Order: CORS → Recovery → RequestID → Metrics → Routes
	// Metrics sits directly on the mux so it sees the matched pattern
	var h http.Handler = obs.Instrument(mux)
	h = middleware.RequestID(logger)(h)
	h = middleware.Recovery(logger)(h)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", server.Addr)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}
}
