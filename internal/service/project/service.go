package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/wizard"
)

type ProjectServiceImpl struct {
	projectRepo project.ProjectRepository
	invalidator dashboard.Invalidator
	now         func() time.Time
	logger      *slog.Logger
}

func NewProjectService(projectRepo project.ProjectRepository, invalidator dashboard.Invalidator, now func() time.Time, logger *slog.Logger) project.ProjectService {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ProjectServiceImpl{
		projectRepo: projectRepo,
		invalidator: invalidator,
		now:         now,
		logger:      logger.With("component", "project"),
	}
}

func (s *ProjectServiceImpl) ListProjects(ctx context.Context, filter project.ListFilter) ([]project.Project, error) {
	projects, err := s.projectRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// ListOverdue compares due dates against today's date in UTC.
func (s *ProjectServiceImpl) ListOverdue(ctx context.Context) ([]project.Project, error) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	projects, err := s.projectRepo.ListOverdue(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue projects: %w", err)
	}
	return projects, nil
}

func (s *ProjectServiceImpl) GetProject(ctx context.Context, id int64) (project.Project, error) {
	p, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, project.ErrProjectNotFound) {
			return project.Project{}, project.ErrProjectNotFound
		}
		return project.Project{}, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

// CreateProject walks the form steps in order and stores the project once the last one passes.
func (s *ProjectServiceImpl) CreateProject(ctx context.Context, req project.CreateProjectRequest) (project.Project, error) {
	var created project.Project
	w, err := wizard.New(project.Steps(), req, func(ctx context.Context, draft project.CreateProjectRequest) error {
		var err error
		created, err = s.storeProject(ctx, draft)
		return err
	})
	if err != nil {
		return project.Project{}, err
	}
	if err := w.Run(ctx); err != nil {
		return project.Project{}, err
	}
	return created, nil
}

func (s *ProjectServiceImpl) storeProject(ctx context.Context, req project.CreateProjectRequest) (project.Project, error) {
	created, err := s.projectRepo.Create(ctx, req.ToProject())
	if err != nil {
		if isReferenceError(err) {
			return project.Project{}, err
		}
		return project.Project{}, fmt.Errorf("failed to create project: %w", err)
	}

	s.invalidator.Invalidate(dashboard.CollectionProjects)
	s.logger.Info("project created", "project_id", created.ID, "status", created.Status)
	return created, nil
}

// UpdateProject merges the sent fields into the stored project and walks the same steps as
// CreateProject before saving.
func (s *ProjectServiceImpl) UpdateProject(ctx context.Context, id int64, req project.UpdateProjectRequest) (project.Project, error) {
	existing, err := s.GetProject(ctx, id)
	if err != nil {
		return project.Project{}, err
	}

	draft := project.DraftFrom(existing)
	req.Apply(&draft)

	var saved project.Project
	w, err := wizard.New(project.Steps(), draft, func(ctx context.Context, draft project.CreateProjectRequest) error {
		updated := draft.ToProject()
		updated.ID = id
		saved, err = s.projectRepo.Update(ctx, updated)
		if err != nil {
			if isReferenceError(err) || errors.Is(err, project.ErrProjectNotFound) {
				return err
			}
			return fmt.Errorf("failed to update project: %w", err)
		}
		return nil
	})
	if err != nil {
		return project.Project{}, err
	}
	if err := w.Run(ctx); err != nil {
		return project.Project{}, err
	}

	s.invalidator.Invalidate(dashboard.CollectionProjects)
	s.logger.Info("project updated", "project_id", id, "status", saved.Status)
	return saved, nil
}

func isReferenceError(err error) bool {
	return errors.Is(err, project.ErrInvalidClient) ||
		errors.Is(err, project.ErrInvalidDepartment) ||
		errors.Is(err, project.ErrInvalidChef) ||
		errors.Is(err, project.ErrInvalidDateRange)
}

func (s *ProjectServiceImpl) DeleteProject(ctx context.Context, id int64) error {
	if err := s.projectRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, project.ErrProjectNotFound) {
			return project.ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}

	// tasks are detached from the project
	s.invalidator.Invalidate(dashboard.CollectionProjects, dashboard.CollectionTasks)
	s.logger.Info("project deleted", "project_id", id)
	return nil
}

func (s *ProjectServiceImpl) ValidateStep(ctx context.Context, step int, req project.CreateProjectRequest) (wizard.StepResult, error) {
	return wizard.Check(project.Steps(), step, req)
}
