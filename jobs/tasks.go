package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	jobmetrics "github.com/Elias0099/examenes-api/internal/jobs"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskAuditPurge is the task type for trimming old login-audit rows.
	TaskAuditPurge = "audit:purge"
)

// AuditPurgePayload configures how far back login-audit rows are retained.
type AuditPurgePayload struct {
	Retention time.Duration `json:"retention"`
}

// NewAuditPurgeTask constructs an Asynq task.
func NewAuditPurgeTask(payload AuditPurgePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAuditPurge, data), nil
}

// NewAuditPurgeHandler builds the handler for TaskAuditPurge tasks. Login
// audit rows are operational history, not session state; the API never reads
// them, so trimming can run at any cadence without affecting requests.
func NewAuditPurgeHandler(pool *pgxpool.Pool, logger *slog.Logger, metrics *jobmetrics.Metrics) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		tracker := metrics.Track(TaskAuditPurge)

		var payload AuditPurgePayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return tracker.End(asynq.SkipRetry)
		}
		if payload.Retention <= 0 {
			payload.Retention = 90 * 24 * time.Hour
		}
		cutoff := time.Now().UTC().Add(-payload.Retention)
		tag, err := pool.Exec(ctx, `DELETE FROM login_audit WHERE logged_in_at < $1`, cutoff)
		if err != nil {
			return tracker.End(err)
		}
		metrics.AddPurged(tag.RowsAffected())
		if logger != nil {
			logger.Info("login audit purge", slog.Int64("deleted", tag.RowsAffected()), slog.Time("cutoff", cutoff))
		}
		return tracker.End(nil)
	}
}
