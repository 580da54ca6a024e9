package main

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"metalpedia-backend/internal/config"
	"metalpedia-backend/internal/infrastructure/queue"
)

// asynqScheduler wraps queue.Scheduler with startup and shutdown logging
type asynqScheduler struct {
	*queue.Scheduler
}

func setupScheduler(redisOpt asynq.RedisClientOpt, jobConfig config.JobConfig) *asynqScheduler {
	scheduler := queue.NewScheduler(redisOpt, jobConfig)

	if err := scheduler.RegisterMediaJobs(); err != nil {
		log.Fatal().Err(err).Msg("[Scheduler] Failed to register")
	}

	go func() {
		log.Info().Msg("[Scheduler] Starting")
		if err := scheduler.Start(); err != nil {
			log.Fatal().Err(err).Msg("[Scheduler] Failed")
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}
}

func (s *asynqScheduler) Shutdown() {
	log.Info().Msg("[Scheduler] Shutting down")
	s.Scheduler.Shutdown()
	log.Info().Msg("[Scheduler] Stopped")
}
