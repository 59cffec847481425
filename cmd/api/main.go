package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"NutriAI/internal/config"
	"NutriAI/internal/geminiservice"
	"NutriAI/internal/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func gracefulShutdown(apiServer *http.Server, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info().Msg("shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// In-flight model calls get 30 seconds to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")

	done <- true
}

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsLocal() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	zerolog.DefaultContextLogger = &log.Logger
}

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	// Only the presence of the credential is ever logged.
	log.Debug().Bool("api_key_present", cfg.HasAPIKey()).Str("model", cfg.Model).Msg("Configuration loaded")
	if !cfg.HasAPIKey() {
		log.Warn().Msg("GOOGLE_API_KEY is not set; model requests will fail until it is configured")
	}

	clientLogger := log.With().Str("component", "gemini").Logger()
	model := geminiservice.NewClient(cfg, &clientLogger)

	apiServer, err := server.NewServer(cfg, model)
	if err != nil {
		log.Fatal().Err(err).Msg("could not initialize server")
	}

	done := make(chan bool, 1)

	go gracefulShutdown(apiServer, done)

	log.Info().Str("addr", apiServer.Addr).Msg("NutriAi listening")
	err = apiServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server error")
	}

	<-done
	log.Info().Msg("Graceful shutdown complete.")
}
