package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// masterRefresher is the slice of the master data service this job needs.
type masterRefresher interface {
	RefreshAll(ctx context.Context) error
}

// MasterdataRefreshJob re-warms the cached master data categories so
// interactive requests keep hitting fresh entries.
type MasterdataRefreshJob struct {
	service masterRefresher
	logger  *slog.Logger
}

func NewMasterdataRefreshJob(service masterRefresher, logger *slog.Logger) *MasterdataRefreshJob {
	return &MasterdataRefreshJob{service: service, logger: logger}
}

// Handle processes one refresh task.
func (j *MasterdataRefreshJob) Handle(ctx context.Context, _ *asynq.Task) error {
	start := time.Now()
	if err := j.service.RefreshAll(ctx); err != nil {
		j.logger.Error("masterdata refresh failed", slog.Any("error", err))
		return err
	}
	j.logger.Info("masterdata refreshed", slog.Duration("took", time.Since(start)))
	return nil
}
