package task

import (
	"context"
	"time"
)

type TaskRepository interface {
	List(ctx context.Context, filter ListFilter) ([]Task, error)
	ListOverdue(ctx context.Context, now time.Time) ([]Task, error)
	GetByID(ctx context.Context, id int64) (Task, error)
	Create(ctx context.Context, t Task) (Task, error)
	Update(ctx context.Context, t Task) (Task, error)
	// Complete marks the task completed at the given time
	Complete(ctx context.Context, id int64, at time.Time) (Task, error)
	Delete(ctx context.Context, id int64) error
}
