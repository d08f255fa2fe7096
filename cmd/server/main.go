package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Brownie44l1/weather-api/internal/config"
	"github.com/Brownie44l1/weather-api/internal/handlers"
	"github.com/Brownie44l1/weather-api/internal/model"
	"github.com/Brownie44l1/weather-api/internal/storage"
	"github.com/Brownie44l1/weather-api/internal/telemetry"
	"github.com/Brownie44l1/weather-api/internal/weather"
)

const (
	serverReadTimeout  = 10 * time.Second
	serverWriteTimeout = 10 * time.Second
	serverIdleTimeout  = 60 * time.Second
)

func main() {
	configFile := pflag.StringP("config", "c", "", "Path to config file (default: search ./config.yaml)")
	pflag.Parse()

	cfg, err := config.Load(viper.New(), *configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	shutdownTelemetry, err := telemetry.Setup(context.Background(), telemetry.Config{
		Enabled:     cfg.Telemetry.Enabled,
		Endpoint:    cfg.Telemetry.Endpoint,
		ServiceName: cfg.Telemetry.ServiceName,
	})
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(ctx); err != nil {
			logger.Warn("telemetry shutdown", "error", err)
		}
	}()

	logger.Info("loading model", "path", cfg.Model.Path)
	engine, err := model.NewEngine(cfg.EngineConfig())
	if err != nil {
		return err
	}
	defer engine.Close()

	adapter, err := weather.NewAdapter(engine)
	if err != nil {
		return err
	}

	var store storage.Store
	if cfg.Storage.Path != "" {
		s, err := storage.NewSQLite(cfg.Storage.Path)
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
		logger.Info("prediction history enabled", "path", cfg.Storage.Path)
	}

	handler := handlers.NewHandler(adapter, store, logger)

	server := &http.Server{
		Addr:         cfg.GetServerAddr(),
		Handler:      handler.Router(),
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  serverIdleTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", server.Addr, "categories", weather.Categories())
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case sig := <-shutdown:
		logger.Info("shutting down", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Warn("error during shutdown", "error", err)
			server.Close()
		}
	}

	logger.Info("server stopped")
	return nil
}
