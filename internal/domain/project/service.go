package project

import (
	"context"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/wizard"
)

type ProjectService interface {
	ListProjects(ctx context.Context, filter ListFilter) ([]Project, error)
	// ListOverdue returns projects past their due date that are not completed
	ListOverdue(ctx context.Context) ([]Project, error)
	GetProject(ctx context.Context, id int64) (Project, error)
	CreateProject(ctx context.Context, req CreateProjectRequest) (Project, error)
	// UpdateProject merges the sent fields and re-runs every add-project step
	UpdateProject(ctx context.Context, id int64, req UpdateProjectRequest) (Project, error)
	DeleteProject(ctx context.Context, id int64) error
	ValidateStep(ctx context.Context, step int, req CreateProjectRequest) (wizard.StepResult, error)
}
