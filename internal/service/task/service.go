package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/task"
)

type TaskServiceImpl struct {
	taskRepo    task.TaskRepository
	invalidator dashboard.Invalidator
	now         func() time.Time
	logger      *slog.Logger
}

func NewTaskService(taskRepo task.TaskRepository, invalidator dashboard.Invalidator, now func() time.Time, logger *slog.Logger) task.TaskService {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskServiceImpl{
		taskRepo:    taskRepo,
		invalidator: invalidator,
		now:         now,
		logger:      logger.With("component", "task"),
	}
}

func (s *TaskServiceImpl) ListTasks(ctx context.Context, filter task.ListFilter) ([]task.Task, error) {
	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskServiceImpl) ListOverdue(ctx context.Context) ([]task.Task, error) {
	tasks, err := s.taskRepo.ListOverdue(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskServiceImpl) GetTask(ctx context.Context, id int64) (task.Task, error) {
	t, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, fmt.Errorf("failed to get task: %w", err)
	}
	return t, nil
}

func (s *TaskServiceImpl) CreateTask(ctx context.Context, req task.CreateTaskRequest) (task.Task, error) {
	if err := req.Validate(); err != nil {
		return task.Task{}, err
	}

	created, err := s.taskRepo.Create(ctx, req.ToTask(s.now()))
	if err != nil {
		if errors.Is(err, task.ErrInvalidEmployee) || errors.Is(err, task.ErrInvalidProject) {
			return task.Task{}, err
		}
		return task.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	s.invalidator.Invalidate(dashboard.CollectionTasks)
	s.logger.Info("task created", "task_id", created.ID, "employee_id", created.EmployeeID)
	return created, nil
}

// UpdateTask keeps the completion date of a task that stays completed. A task moved to
// Completed is stamped now, and one moved away from it loses the date.
func (s *TaskServiceImpl) UpdateTask(ctx context.Context, id int64, req task.UpdateTaskRequest) (task.Task, error) {
	existing, err := s.GetTask(ctx, id)
	if err != nil {
		return task.Task{}, err
	}

	draft := task.DraftFrom(existing)
	req.Apply(&draft)
	if err := draft.Validate(); err != nil {
		return task.Task{}, err
	}

	updated := draft.ToTask(s.now())
	updated.ID = id
	if updated.IsCompleted() && existing.IsCompleted() {
		updated.CompletedDate = existing.CompletedDate
	}

	saved, err := s.taskRepo.Update(ctx, updated)
	if err != nil {
		if errors.Is(err, task.ErrInvalidEmployee) || errors.Is(err, task.ErrInvalidProject) || errors.Is(err, task.ErrTaskNotFound) {
			return task.Task{}, err
		}
		return task.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	s.invalidator.Invalidate(dashboard.CollectionTasks)
	s.logger.Info("task updated", "task_id", id, "status", saved.Status)
	return saved, nil
}

// CompleteTask is idempotent: a completed task keeps its original completion date.
func (s *TaskServiceImpl) CompleteTask(ctx context.Context, id int64) (task.Task, error) {
	current, err := s.GetTask(ctx, id)
	if err != nil {
		return task.Task{}, err
	}
	if current.IsCompleted() {
		return current, nil
	}

	completed, err := s.taskRepo.Complete(ctx, id, s.now())
	if err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, fmt.Errorf("failed to complete task: %w", err)
	}

	s.invalidator.Invalidate(dashboard.CollectionTasks)
	s.logger.Info("task completed", "task_id", id)
	return completed, nil
}

func (s *TaskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			return task.ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.invalidator.Invalidate(dashboard.CollectionTasks)
	s.logger.Info("task deleted", "task_id", id)
	return nil
}
