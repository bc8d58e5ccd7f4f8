package main

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"reading-tracker-backend/internal/config"
)

// startAsynqServer runs the task server in the background and returns
// it for shutdown.
func startAsynqServer(cfg *config.Config, handlers *HandlerRegistry) *asynq.Server {
	mux := asynq.NewServeMux()
	handlers.Register(mux)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Host,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 20,
			Queues: map[string]int{
				"high":    20,
				"default": 10,
				"low":     5,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(_ context.Context, task *asynq.Task, err error) {
				log.Error().Err(err).Str("type", task.Type()).Msg("Task failed")
			}),
		},
	)

	go func() {
		log.Info().Msg("Worker starting")
		if err := srv.Run(mux); err != nil {
			log.Fatal().Err(err).Msg("Worker failed")
		}
	}()

	return srv
}
