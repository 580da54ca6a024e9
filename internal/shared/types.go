package shared

// Asynq task types
const (
	TypeMediaCleanup     = "media:cleanup"
	TypeMediaOrphanSweep = "media:orphan_sweep"
)

// Asynq queues, weights are set in cmd/worker
const (
	QueueHigh    = "high"
	QueueDefault = "default"
	QueueLow     = "low"
)

// MediaCleanupPayload asks the worker to delete one stored object
type MediaCleanupPayload struct {
	Key    string `json:"key"`
	Reason string `json:"reason,omitempty"`
}

// OrphanSweepPayload configures one run of the orphan sweep
type OrphanSweepPayload struct {
	GracePeriodSeconds int64 `json:"grace_period_seconds"`
}
