package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/datetime"
	"github.com/jackc/pgx/v5"
)

const projectColumns = `project_id, project_name, client_id, department_id, chef_id,
	start_date, end_date, status, description, due_at`

type projectRepositoryImpl struct {
	db *database.DB
}

func NewProjectRepository(db *database.DB) project.ProjectRepository {
	return &projectRepositoryImpl{db: db}
}

func scanProject(row pgx.Row) (project.Project, error) {
	var p project.Project
	var endDate, dueAt *time.Time
	err := row.Scan(
		&p.ID, &p.ProjectName, &p.ClientID, &p.DepartmentID, &p.ChefID,
		&p.StartDate.Time, &endDate, &p.Status, &p.Description, &dueAt,
	)
	p.EndDate = datetime.Ptr(endDate)
	p.DueAt = datetime.Ptr(dueAt)
	return p, err
}

func (r *projectRepositoryImpl) query(ctx context.Context, sql string, args ...any) ([]project.Project, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []project.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// List implements project.ProjectRepository.
func (r *projectRepositoryImpl) List(ctx context.Context, filter project.ListFilter) ([]project.Project, error) {
	var where whereBuilder
	if filter.ClientID != nil {
		where.add("client_id = ?", *filter.ClientID)
	}
	if filter.DepartmentID != nil {
		where.add("department_id = ?", *filter.DepartmentID)
	}
	if filter.ChefID != nil {
		where.add("chef_id = ?", *filter.ChefID)
	}
	if filter.Status != nil {
		where.add("status = ?", *filter.Status)
	}
	if name := strings.TrimSpace(filter.Name); name != "" {
		where.add("project_name ILIKE ?", "%"+name+"%")
	}
	return r.query(ctx, `SELECT `+projectColumns+` FROM projects`+where.String()+` ORDER BY project_id`, where.args...)
}

// ListOverdue implements project.ProjectRepository.
func (r *projectRepositoryImpl) ListOverdue(ctx context.Context, today time.Time) ([]project.Project, error) {
	return r.query(ctx, `
		SELECT `+projectColumns+` FROM projects
		WHERE due_at < $1 AND status <> $2
		ORDER BY due_at, project_id`,
		today, project.StatusCompleted,
	)
}

// GetByID implements project.ProjectRepository.
func (r *projectRepositoryImpl) GetByID(ctx context.Context, id int64) (project.Project, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanProject(q.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE project_id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return project.Project{}, project.ErrProjectNotFound
		}
		return project.Project{}, fmt.Errorf("failed to get project with id %d: %w", id, err)
	}
	return p, nil
}

// Create implements project.ProjectRepository.
func (r *projectRepositoryImpl) Create(ctx context.Context, p project.Project) (project.Project, error) {
	q := GetQuerier(ctx, r.db)

	created, err := scanProject(q.QueryRow(ctx, `
		INSERT INTO projects (
			project_name, client_id, department_id, chef_id, start_date,
			end_date, status, description, due_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+projectColumns,
		p.ProjectName, p.ClientID, p.DepartmentID, p.ChefID, p.StartDate.Time,
		datetime.Std(p.EndDate), p.Status, p.Description, datetime.Std(p.DueAt),
	))
	if err != nil {
		if mapped := projectWriteError(err); mapped != nil {
			return project.Project{}, mapped
		}
		return project.Project{}, fmt.Errorf("failed to create project: %w", err)
	}
	return created, nil
}

// Update implements project.ProjectRepository.
func (r *projectRepositoryImpl) Update(ctx context.Context, p project.Project) (project.Project, error) {
	q := GetQuerier(ctx, r.db)

	saved, err := scanProject(q.QueryRow(ctx, `
		UPDATE projects SET
			project_name = $1, client_id = $2, department_id = $3, chef_id = $4, start_date = $5,
			end_date = $6, status = $7, description = $8, due_at = $9
		WHERE project_id = $10
		RETURNING `+projectColumns,
		p.ProjectName, p.ClientID, p.DepartmentID, p.ChefID, p.StartDate.Time,
		datetime.Std(p.EndDate), p.Status, p.Description, datetime.Std(p.DueAt), p.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return project.Project{}, project.ErrProjectNotFound
		}
		if mapped := projectWriteError(err); mapped != nil {
			return project.Project{}, mapped
		}
		return project.Project{}, fmt.Errorf("failed to update project with id %d: %w", p.ID, err)
	}
	return saved, nil
}

// projectWriteError maps constraint violations to domain errors, or returns nil.
func projectWriteError(err error) error {
	if code, _ := pgErrorCode(err); code == checkViolation {
		return project.ErrInvalidDateRange
	}
	switch c := foreignKeyConstraint(err); {
	case strings.Contains(c, "client"):
		return project.ErrInvalidClient
	case strings.Contains(c, "department"):
		return project.ErrInvalidDepartment
	case strings.Contains(c, "chef"):
		return project.ErrInvalidChef
	}
	return nil
}

// Delete implements project.ProjectRepository.
func (r *projectRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM projects WHERE project_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project with id %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return project.ErrProjectNotFound
	}
	return nil
}
