package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"metalpedia-backend/internal/config"
	"metalpedia-backend/internal/shared"
	"metalpedia-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisOpt asynq.RedisClientOpt, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

// RegisterMediaJobs registers the periodic media maintenance tasks
func (s *Scheduler) RegisterMediaJobs() error {
	return s.registerOrphanSweepJob()
}

func (s *Scheduler) registerOrphanSweepJob() error {
	payload, err := json.Marshal(shared.OrphanSweepPayload{
		GracePeriodSeconds: int64(s.jobConfig.OrphanGracePeriod / time.Second),
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeMediaOrphanSweep, payload)

	_, err = s.scheduler.Register(
		s.jobConfig.OrphanSweepCron,
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(15*time.Minute),
		asynq.Unique(time.Hour),
	)
	if err != nil {
		logger.Error("Failed to register MediaOrphanSweep job", err)
		return err
	}

	logger.Info("Registered MediaOrphanSweep", map[string]interface{}{
		"cron":         s.jobConfig.OrphanSweepCron,
		"grace_period": s.jobConfig.OrphanGracePeriod.String(),
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
