package task

import "context"

type TaskService interface {
	ListTasks(ctx context.Context, filter ListFilter) ([]Task, error)
	ListOverdue(ctx context.Context) ([]Task, error)
	GetTask(ctx context.Context, id int64) (Task, error)
	CreateTask(ctx context.Context, req CreateTaskRequest) (Task, error)
	// UpdateTask merges the sent fields and re-validates the result
	UpdateTask(ctx context.Context, id int64, req UpdateTaskRequest) (Task, error)
	// CompleteTask sets the status to Completed and stamps the completion time
	CompleteTask(ctx context.Context, id int64) (Task, error)
	DeleteTask(ctx context.Context, id int64) error
}
