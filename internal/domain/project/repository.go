package project

import (
	"context"
	"time"
)

type ProjectRepository interface {
	List(ctx context.Context, filter ListFilter) ([]Project, error)
	// ListOverdue returns projects due before the given date that are not completed
	ListOverdue(ctx context.Context, today time.Time) ([]Project, error)
	GetByID(ctx context.Context, id int64) (Project, error)
	Create(ctx context.Context, p Project) (Project, error)
	Update(ctx context.Context, p Project) (Project, error)
	Delete(ctx context.Context, id int64) error
}
