package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/hookscope/hookscope-be/internal/cleanup"
	"github.com/hookscope/hookscope-be/internal/config"
	"github.com/hookscope/hookscope-be/internal/database"
	"github.com/hookscope/hookscope-be/internal/handler"
	"github.com/hookscope/hookscope-be/internal/repository"
	"github.com/hookscope/hookscope-be/internal/service"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		logger.Info().Msg("no .env file found, using environment variables from OS")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := database.ConnectDB(cfg.DSN())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()
	logger.Info().Msg("successfully connected to database")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := database.InitSchema(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize schema")
	}

	repo := repository.NewWebhookRepository(db)
	webhookService := service.NewWebhookService(repo, logger.With().Str("component", "service").Logger())
	router := handler.SetupRouter(webhookService, db, logger.With().Str("component", "handler").Logger())

	sweeper := cleanup.NewSweeper(repo, cfg.RetentionDays, logger.With().Str("component", "cleanup").Logger())
	go sweeper.Start(ctx)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server starting")
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Str("port", cfg.Port).Msg("cannot run server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info().Msg("shutting down the server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server successfully shut down")
}
