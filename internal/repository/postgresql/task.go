package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/datetime"
	"github.com/jackc/pgx/v5"
)

const taskColumns = `task_id, employee_id, project_id, title, description, status, priority,
	assigned_date, due_date, completed_date`

type taskRepositoryImpl struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) task.TaskRepository {
	return &taskRepositoryImpl{db: db}
}

func scanTask(row pgx.Row) (task.Task, error) {
	var t task.Task
	var dueDate, completedDate *time.Time
	err := row.Scan(
		&t.ID, &t.EmployeeID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.AssignedDate.Time, &dueDate, &completedDate,
	)
	t.DueDate = datetime.Ptr(dueDate)
	t.CompletedDate = datetime.Ptr(completedDate)
	return t, err
}

func (r *taskRepositoryImpl) query(ctx context.Context, sql string, args ...any) ([]task.Task, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// List implements task.TaskRepository.
func (r *taskRepositoryImpl) List(ctx context.Context, filter task.ListFilter) ([]task.Task, error) {
	var where whereBuilder
	if filter.EmployeeID != nil {
		where.add("employee_id = ?", *filter.EmployeeID)
	}
	if filter.ProjectID != nil {
		where.add("project_id = ?", *filter.ProjectID)
	}
	if filter.Status != nil {
		where.add("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		where.add("priority = ?", *filter.Priority)
	}
	if title := strings.TrimSpace(filter.Title); title != "" {
		where.add("title ILIKE ?", "%"+title+"%")
	}
	return r.query(ctx, `SELECT `+taskColumns+` FROM tasks`+where.String()+` ORDER BY task_id`, where.args...)
}

// ListOverdue implements task.TaskRepository.
func (r *taskRepositoryImpl) ListOverdue(ctx context.Context, now time.Time) ([]task.Task, error) {
	return r.query(ctx, `
		SELECT `+taskColumns+` FROM tasks
		WHERE due_date < $1 AND status <> $2
		ORDER BY due_date, task_id`,
		now, task.StatusCompleted,
	)
}

// GetByID implements task.TaskRepository.
func (r *taskRepositoryImpl) GetByID(ctx context.Context, id int64) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	t, err := scanTask(q.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE task_id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, fmt.Errorf("failed to get task with id %d: %w", id, err)
	}
	return t, nil
}

// Create implements task.TaskRepository.
func (r *taskRepositoryImpl) Create(ctx context.Context, t task.Task) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	created, err := scanTask(q.QueryRow(ctx, `
		INSERT INTO tasks (
			employee_id, project_id, title, description, status, priority,
			assigned_date, due_date, completed_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+taskColumns,
		t.EmployeeID, t.ProjectID, t.Title, t.Description, t.Status, t.Priority,
		t.AssignedDate.Time, datetime.Std(t.DueDate), datetime.Std(t.CompletedDate),
	))
	if err != nil {
		if mapped := taskWriteError(err); mapped != nil {
			return task.Task{}, mapped
		}
		return task.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	return created, nil
}

// Update implements task.TaskRepository.
func (r *taskRepositoryImpl) Update(ctx context.Context, t task.Task) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	saved, err := scanTask(q.QueryRow(ctx, `
		UPDATE tasks SET
			employee_id = $1, project_id = $2, title = $3, description = $4, status = $5,
			priority = $6, assigned_date = $7, due_date = $8, completed_date = $9
		WHERE task_id = $10
		RETURNING `+taskColumns,
		t.EmployeeID, t.ProjectID, t.Title, t.Description, t.Status, t.Priority,
		t.AssignedDate.Time, datetime.Std(t.DueDate), datetime.Std(t.CompletedDate), t.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrTaskNotFound
		}
		if mapped := taskWriteError(err); mapped != nil {
			return task.Task{}, mapped
		}
		return task.Task{}, fmt.Errorf("failed to update task with id %d: %w", t.ID, err)
	}
	return saved, nil
}

func taskWriteError(err error) error {
	switch c := foreignKeyConstraint(err); {
	case strings.Contains(c, "employee"):
		return task.ErrInvalidEmployee
	case strings.Contains(c, "project"):
		return task.ErrInvalidProject
	}
	return nil
}

// Complete implements task.TaskRepository.
func (r *taskRepositoryImpl) Complete(ctx context.Context, id int64, at time.Time) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	t, err := scanTask(q.QueryRow(ctx, `
		UPDATE tasks SET status = $1, completed_date = $2
		WHERE task_id = $3
		RETURNING `+taskColumns,
		task.StatusCompleted, at, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, fmt.Errorf("failed to complete task with id %d: %w", id, err)
	}
	return t, nil
}

// Delete implements task.TaskRepository.
func (r *taskRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM tasks WHERE task_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task with id %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}
