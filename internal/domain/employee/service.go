package employee

import (
	"context"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/contract"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/filter"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/wizard"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// ListEmployees returns employees narrowed by the selection (department and status)
	ListEmployees(ctx context.Context, sel filter.Selection) ([]EmployeeResponse, error)

	// GetEmployee retrieves a single employee with department and manager names
	GetEmployee(ctx context.Context, id int64) (EmployeeResponse, error)

	// CreateEmployee validates every wizard step, then stores the employee and its contract
	// in one transaction
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (CreateEmployeeResponse, error)

	// UpdateEmployee merges the sent profile fields into the stored employee and re-runs
	// the profile steps
	UpdateEmployee(ctx context.Context, id int64, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// DeleteEmployee removes an employee
	DeleteEmployee(ctx context.Context, id int64) error

	// ValidateStep checks a single wizard step
	ValidateStep(ctx context.Context, step int, req CreateEmployeeRequest) (wizard.StepResult, error)

	// ListContracts returns the contracts of an employee
	ListContracts(ctx context.Context, id int64) ([]contract.Contract, error)
}
