package app

import (
	"context"
	"log/slog"

	"healthhub/internal/domain"
	"healthhub/internal/metrics"
	"healthhub/internal/task"
)

// TaskFinished returns a runner hook that records metrics, logs and publishes
// an event for every finished task.
func TaskFinished(events domain.EventPublisher) func(task.Info) {
	if events == nil {
		events = domain.NopPublisher{}
	}
	return func(info task.Info) {
		metrics.Tasks.WithLabelValues(info.Kind, string(info.Status)).Inc()
		metrics.TaskDuration.WithLabelValues(info.Kind).Observe(info.Duration().Seconds())
		slog.Info("task finished",
			"task_id", info.ID,
			"kind", info.Kind,
			"status", info.Status,
			"duration_ms", info.Duration().Milliseconds(),
		)
		if err := events.Publish(context.Background(), domain.EventTaskFinished, info); err != nil {
			slog.Warn("publish task event", "task_id", info.ID, "error", err)
		}
	}
}
