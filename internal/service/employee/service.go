package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/contract"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/filter"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/wizard"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/repository/postgresql"
)

type EmployeeServiceImpl struct {
	withTx         postgresql.TxFunc
	employeeRepo   employee.EmployeeRepository
	contractRepo   contract.ContractRepository
	departmentRepo department.DepartmentRepository
	invalidator    dashboard.Invalidator
	logger         *slog.Logger
}

func NewEmployeeService(
	db *database.DB,
	employeeRepo employee.EmployeeRepository,
	contractRepo contract.ContractRepository,
	departmentRepo department.DepartmentRepository,
	invalidator dashboard.Invalidator,
	logger *slog.Logger,
) employee.EmployeeService {
	return newEmployeeService(postgresql.Transactor(db), employeeRepo, contractRepo, departmentRepo, invalidator, logger)
}

func newEmployeeService(
	withTx postgresql.TxFunc,
	employeeRepo employee.EmployeeRepository,
	contractRepo contract.ContractRepository,
	departmentRepo department.DepartmentRepository,
	invalidator dashboard.Invalidator,
	logger *slog.Logger,
) *EmployeeServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmployeeServiceImpl{
		withTx:         withTx,
		employeeRepo:   employeeRepo,
		contractRepo:   contractRepo,
		departmentRepo: departmentRepo,
		invalidator:    invalidator,
		logger:         logger.With("component", "employee"),
	}
}

// Helper function to attach department and manager names
func mapEmployeeToResponse(emp employee.Employee, departments map[int64]string, managers map[int64]string) employee.EmployeeResponse {
	resp := employee.EmployeeResponse{Employee: emp, FullName: emp.FullName()}
	if emp.DepartmentID != nil {
		if name, ok := departments[*emp.DepartmentID]; ok {
			resp.DepartmentName = &name
		}
	}
	if emp.ManagerID != nil {
		if name, ok := managers[*emp.ManagerID]; ok {
			resp.ManagerName = &name
		}
	}
	return resp
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, sel filter.Selection) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	departments, err := s.departmentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	departmentNames := make(map[int64]string, len(departments))
	for _, d := range departments {
		departmentNames[d.ID] = d.DepartmentName
	}
	names := make(map[int64]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.FullName()
	}

	filtered := filter.Apply(employees, sel, filter.Keys[employee.Employee]{
		Employee:   func(e employee.Employee) (int64, bool) { return e.ID, true },
		Department: employee.Employee.DepartmentKey,
		Status:     func(e employee.Employee) string { return string(e.Status) },
	})

	resp := make([]employee.EmployeeResponse, 0, len(filtered))
	for _, e := range filtered {
		resp = append(resp, mapEmployeeToResponse(e, departmentNames, names))
	}
	return resp, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id int64) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	departments := map[int64]string{}
	if emp.DepartmentID != nil {
		dept, err := s.departmentRepo.GetByID(ctx, *emp.DepartmentID)
		if err != nil && !errors.Is(err, department.ErrDepartmentNotFound) {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to get department: %w", err)
		}
		if err == nil {
			departments[dept.ID] = dept.DepartmentName
		}
	}

	managers := map[int64]string{}
	if emp.ManagerID != nil {
		manager, err := s.employeeRepo.GetByID(ctx, *emp.ManagerID)
		if err != nil && !errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to get manager: %w", err)
		}
		if err == nil {
			managers[manager.ID] = manager.FullName()
		}
	}

	return mapEmployeeToResponse(emp, departments, managers), nil
}

// CreateEmployee implements employee.EmployeeService. The form steps run in order and the
// employee is stored with its contract once the last step passes.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.CreateEmployeeResponse, error) {
	var resp employee.CreateEmployeeResponse
	w, err := wizard.New(employee.Steps(), req, func(ctx context.Context, draft employee.CreateEmployeeRequest) error {
		var err error
		resp, err = s.storeEmployee(ctx, draft)
		return err
	})
	if err != nil {
		return employee.CreateEmployeeResponse{}, err
	}
	if err := w.Run(ctx); err != nil {
		return employee.CreateEmployeeResponse{}, err
	}
	return resp, nil
}

func (s *EmployeeServiceImpl) storeEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.CreateEmployeeResponse, error) {
	newEmployee := req.ToEmployee()
	newContract := req.ToContract()

	// Check if email already exists
	exists, err := s.employeeRepo.ExistsByEmail(ctx, newEmployee.Email)
	if err != nil {
		return employee.CreateEmployeeResponse{}, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return employee.CreateEmployeeResponse{}, employee.ErrEmailExists
	}

	if err := s.resolveDepartmentAndManager(ctx, &newEmployee); err != nil {
		return employee.CreateEmployeeResponse{}, err
	}

	var created employee.Employee
	var createdContract contract.Contract
	err = s.withTx(ctx, func(txCtx context.Context) error {
		created, err = s.employeeRepo.Create(txCtx, newEmployee)
		if err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}

		newContract.EmployeeID = created.ID
		createdContract, err = s.contractRepo.Create(txCtx, newContract)
		if err != nil {
			return fmt.Errorf("failed to create contract: %w", err)
		}
		return nil
	})
	if err != nil {
		return employee.CreateEmployeeResponse{}, err
	}

	s.invalidator.Invalidate(dashboard.CollectionEmployees)
	s.logger.Info("employee created", "employee_id", created.ID, "contract_id", createdContract.ID)

	return employee.CreateEmployeeResponse{Employee: created, Contract: createdContract}, nil
}

// resolveDepartmentAndManager checks the selected department and manager exist. A missing
// manager defaults to the department head. The department step guarantees a department
// unless it was skipped, so a missing department stays empty.
func (s *EmployeeServiceImpl) resolveDepartmentAndManager(ctx context.Context, e *employee.Employee) error {
	dept, err := s.checkReferences(ctx, e)
	if err != nil {
		return err
	}
	if e.ManagerID == nil && dept != nil && dept.ManagerID != nil {
		e.ManagerID = dept.ManagerID
	}
	return nil
}

// checkReferences returns the employee's department, or nil when it has none.
func (s *EmployeeServiceImpl) checkReferences(ctx context.Context, e *employee.Employee) (*department.Department, error) {
	if e.ManagerID != nil {
		if _, err := s.employeeRepo.GetByID(ctx, *e.ManagerID); err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return nil, employee.ErrInvalidManager
			}
			return nil, fmt.Errorf("failed to get manager: %w", err)
		}
	}

	if e.DepartmentID == nil {
		return nil, nil
	}
	dept, err := s.departmentRepo.GetByID(ctx, *e.DepartmentID)
	if err != nil {
		if errors.Is(err, department.ErrDepartmentNotFound) {
			return nil, employee.ErrInvalidDepartment
		}
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	return &dept, nil
}

// UpdateEmployee implements employee.EmployeeService. The merged profile goes through the
// same steps as the add-employee form. The manager is not defaulted on update.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, id int64, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	existing, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	draft := employee.DraftFrom(existing)
	req.Apply(&draft)

	w, err := wizard.New(employee.ProfileSteps(), draft, func(ctx context.Context, draft employee.CreateEmployeeRequest) error {
		updated := draft.ToEmployee()
		updated.ID = id
		return s.storeProfile(ctx, existing, updated)
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := w.Run(ctx); err != nil {
		return employee.EmployeeResponse{}, err
	}
	return s.GetEmployee(ctx, id)
}

func (s *EmployeeServiceImpl) storeProfile(ctx context.Context, existing, updated employee.Employee) error {
	if updated.ManagerID != nil && *updated.ManagerID == updated.ID {
		return employee.ErrSelfManager
	}
	if !strings.EqualFold(existing.Email, updated.Email) {
		exists, err := s.employeeRepo.ExistsByEmail(ctx, updated.Email)
		if err != nil {
			return fmt.Errorf("failed to check email existence: %w", err)
		}
		if exists {
			return employee.ErrEmailExists
		}
	}
	if _, err := s.checkReferences(ctx, &updated); err != nil {
		return err
	}

	if _, err := s.employeeRepo.Update(ctx, updated); err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}

	s.invalidator.Invalidate(dashboard.CollectionEmployees)
	s.logger.Info("employee updated", "employee_id", updated.ID)
	return nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id int64) error {
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	// tasks cascade, tickets and managers are unlinked
	s.invalidator.Invalidate(
		dashboard.CollectionEmployees,
		dashboard.CollectionDepartments,
		dashboard.CollectionTasks,
		dashboard.CollectionTickets,
	)
	s.logger.Info("employee deleted", "employee_id", id)
	return nil
}

// ValidateStep implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ValidateStep(ctx context.Context, step int, req employee.CreateEmployeeRequest) (wizard.StepResult, error) {
	return wizard.Check(employee.Steps(), step, req)
}

// ListContracts implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListContracts(ctx context.Context, id int64) ([]contract.Contract, error) {
	if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	contracts, err := s.contractRepo.ListByEmployeeID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	return contracts, nil
}
