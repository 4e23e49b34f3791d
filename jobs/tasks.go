// Package jobs defines the background task types and the Asynq worker
// that runs them.
package jobs

import (
	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the queue all tasks run on.
	QueueDefault = "default"

	// TaskMasterdataRefresh re-warms the master data cache.
	TaskMasterdataRefresh = "masterdata:refresh"
)

// NewMasterdataRefreshTask builds the cache refresh task. It carries
// no payload.
func NewMasterdataRefreshTask() *asynq.Task {
	return asynq.NewTask(TaskMasterdataRefresh, nil)
}
