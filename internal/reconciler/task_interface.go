package reconciler

import (
	"context"

	"taskboard/internal/models/task"
)

type TaskGateway interface {
	CreateTask(context.Context, *task.Task) (*task.Task, error)
	GetTask(context.Context, string) (*task.Task, error)
	ListTasks(context.Context, string, task.Filter) ([]*task.Task, error)
	UpdateTask(context.Context, string, *task.Task) (*task.Task, error)
	UpdateSubtask(context.Context, string, int, bool) (*task.Task, error)
	DeleteTask(context.Context, string) error
	GetAnalytics(context.Context, string) (*task.Analytics, error)
}
