package department

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/employee"
)

type DepartmentServiceImpl struct {
	departmentRepo department.DepartmentRepository
	employeeRepo   employee.EmployeeRepository
	invalidator    dashboard.Invalidator
	logger         *slog.Logger
}

func NewDepartmentService(
	departmentRepo department.DepartmentRepository,
	employeeRepo employee.EmployeeRepository,
	invalidator dashboard.Invalidator,
	logger *slog.Logger,
) department.DepartmentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DepartmentServiceImpl{
		departmentRepo: departmentRepo,
		employeeRepo:   employeeRepo,
		invalidator:    invalidator,
		logger:         logger.With("component", "department"),
	}
}

func (s *DepartmentServiceImpl) ListDepartments(ctx context.Context) ([]department.Department, error) {
	departments, err := s.departmentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return departments, nil
}

func (s *DepartmentServiceImpl) ListWithManagers(ctx context.Context) ([]department.DepartmentWithManager, error) {
	departments, err := s.departmentRepo.ListWithManagers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments with managers: %w", err)
	}
	return departments, nil
}

func (s *DepartmentServiceImpl) GetDepartment(ctx context.Context, id int64) (department.Department, error) {
	d, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, department.ErrDepartmentNotFound) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, fmt.Errorf("failed to get department: %w", err)
	}
	return d, nil
}

func (s *DepartmentServiceImpl) CreateDepartment(ctx context.Context, req department.CreateDepartmentRequest) (department.Department, error) {
	if err := req.Validate(); err != nil {
		return department.Department{}, err
	}
	newDepartment := req.ToDepartment()

	exists, err := s.departmentRepo.ExistsByName(ctx, newDepartment.DepartmentName)
	if err != nil {
		return department.Department{}, fmt.Errorf("failed to check department name: %w", err)
	}
	if exists {
		return department.Department{}, department.ErrDepartmentNameExists
	}

	if err := s.checkManager(ctx, newDepartment.ManagerID); err != nil {
		return department.Department{}, err
	}

	created, err := s.departmentRepo.Create(ctx, newDepartment)
	if err != nil {
		return department.Department{}, fmt.Errorf("failed to create department: %w", err)
	}

	s.invalidator.Invalidate(dashboard.CollectionDepartments)
	s.logger.Info("department created", "department_id", created.ID)
	return created, nil
}

func (s *DepartmentServiceImpl) UpdateDepartment(ctx context.Context, id int64, req department.UpdateDepartmentRequest) (department.Department, error) {
	existing, err := s.GetDepartment(ctx, id)
	if err != nil {
		return department.Department{}, err
	}

	draft := department.DraftFrom(existing)
	req.Apply(&draft)
	if err := draft.Validate(); err != nil {
		return department.Department{}, err
	}
	updated := draft.ToDepartment()
	updated.ID = id

	if !strings.EqualFold(existing.DepartmentName, updated.DepartmentName) {
		exists, err := s.departmentRepo.ExistsByName(ctx, updated.DepartmentName)
		if err != nil {
			return department.Department{}, fmt.Errorf("failed to check department name: %w", err)
		}
		if exists {
			return department.Department{}, department.ErrDepartmentNameExists
		}
	}
	if err := s.checkManager(ctx, updated.ManagerID); err != nil {
		return department.Department{}, err
	}

	saved, err := s.departmentRepo.Update(ctx, updated)
	if err != nil {
		return department.Department{}, fmt.Errorf("failed to update department: %w", err)
	}

	s.invalidator.Invalidate(dashboard.CollectionDepartments)
	s.logger.Info("department updated", "department_id", id)
	return saved, nil
}

func (s *DepartmentServiceImpl) checkManager(ctx context.Context, managerID *int64) error {
	if managerID == nil {
		return nil
	}
	if _, err := s.employeeRepo.GetByID(ctx, *managerID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return department.ErrInvalidManager
		}
		return fmt.Errorf("failed to get manager: %w", err)
	}
	return nil
}

func (s *DepartmentServiceImpl) DeleteDepartment(ctx context.Context, id int64) error {
	if err := s.departmentRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, department.ErrDepartmentNotFound), errors.Is(err, department.ErrDepartmentInUse):
			return err
		}
		return fmt.Errorf("failed to delete department: %w", err)
	}

	// members are detached from the department
	s.invalidator.Invalidate(dashboard.CollectionDepartments, dashboard.CollectionEmployees)
	s.logger.Info("department deleted", "department_id", id)
	return nil
}
