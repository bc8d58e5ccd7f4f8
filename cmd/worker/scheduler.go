package main

import (
	"os"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"reading-tracker-backend/internal/config"
	"reading-tracker-backend/internal/infrastructure/email"
)

// startScheduler registers the periodic jobs and runs the scheduler in
// the background. The deadline sweep defaults to 08:00 UTC daily.
func startScheduler(cfg *config.Config) *asynq.Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Host,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		nil,
	)

	spec := os.Getenv("DEADLINE_REMINDER_CRON")
	if spec == "" {
		spec = "0 8 * * *"
	}

	entryID, err := scheduler.Register(spec, email.NewDeadlineReminderTask())
	if err != nil {
		log.Fatal().Err(err).Msg("Scheduler registration failed")
	}
	log.Info().Str("entry_id", entryID).Str("cron", spec).Msg("Deadline reminder scheduled")

	go func() {
		log.Info().Msg("Scheduler starting")
		if err := scheduler.Run(); err != nil {
			log.Fatal().Err(err).Msg("Scheduler failed")
		}
	}()

	return scheduler
}
