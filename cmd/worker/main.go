package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"reading-tracker-backend/pkg/container"
	"reading-tracker-backend/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using system environment variables")
	}
	logger.Init(os.Getenv("APP_ENV"))

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	c, err := container.New(ctx)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Container initialization failed")
	}
	defer c.Cleanup()

	handlers := newHandlerRegistry(c)

	srv := startAsynqServer(c.Config, handlers)
	scheduler := startScheduler(c.Config)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Worker shutting down")
	scheduler.Shutdown()
	srv.Shutdown()
	log.Info().Msg("Worker stopped")
}
