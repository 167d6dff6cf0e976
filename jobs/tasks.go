package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/ryanfelix147-netizen/GT/internal/jobs"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskLogisticsSync is the task type for the simulated Droplatam sync.
	TaskLogisticsSync = "logistics:sync"
)

// LogisticsSyncPayload describes who asked for a sync and when.
type LogisticsSyncPayload struct {
	RequestedAt time.Time `json:"requested_at"`
	Source      string    `json:"source"`
}

// NewLogisticsSyncTask constructs an Asynq task.
func NewLogisticsSyncTask(payload LogisticsSyncPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLogisticsSync, data, asynq.MaxRetry(3), asynq.Timeout(30*time.Second)), nil
}

// SyncMarker records a completed sync.
type SyncMarker interface {
	MarkSynced(ctx context.Context, at time.Time) error
}

// LogisticsSyncJob handles TaskLogisticsSync. No external API is contacted;
// completing the task only records the sync time.
type LogisticsSyncJob struct {
	Tracker SyncMarker
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
	clock   func() time.Time
}

// NewLogisticsSyncJob wires dependencies for the sync handler.
func NewLogisticsSyncJob(tracker SyncMarker, logger *slog.Logger, metrics *jobmetrics.Metrics) *LogisticsSyncJob {
	return &LogisticsSyncJob{
		Tracker: tracker,
		Logger:  logger,
		Metrics: metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes logistics sync tasks.
func (j *LogisticsSyncJob) Handle(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Tracker == nil {
		return errors.New("logistics sync: handler not configured")
	}
	var payload LogisticsSyncPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.Source == "" {
		payload.Source = "unknown"
	}

	tracker := j.Metrics.Track(TaskLogisticsSync)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger().With(slog.String("source", payload.Source))
	now := j.clock()
	if err := j.Tracker.MarkSynced(ctx, now); err != nil {
		logger.Error("mark logistics synced", slog.Any("error", err))
		return err
	}
	lag := time.Duration(0)
	if !payload.RequestedAt.IsZero() {
		lag = now.Sub(payload.RequestedAt)
	}
	logger.Info("logistics sync completed", slog.Duration("queue_lag", lag))
	return nil
}

// WithClock overrides the job clock for testing.
func (j *LogisticsSyncJob) WithClock(fn func() time.Time) {
	if fn != nil {
		j.clock = fn
	}
}

func (j *LogisticsSyncJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
