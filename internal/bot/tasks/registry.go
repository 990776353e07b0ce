package tasks

import (
	"context"
)

// ScheduledTaskFunc is the signature of every scheduled task. The context is cancelled
// when the scheduler shuts down.
type ScheduledTaskFunc func(ctx context.Context) error

// TaskLLMProbe is the scheduler key of the completion backend probe.
const TaskLLMProbe = "llm_probe"

// RegisterAllTasks initializes and returns every scheduled task keyed by the name used
// in the scheduler configuration.
func RegisterAllTasks(deps TaskDeps) map[string]ScheduledTaskFunc {
	tasks := make(map[string]ScheduledTaskFunc)

	tasks[TaskLLMProbe] = newLLMProbeTask(deps)

	deps.Logger.Info("Initialized scheduled tasks", "count", len(tasks))
	return tasks
}
