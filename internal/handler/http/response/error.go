package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/client"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/contract"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/ticket"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/wizard"
)

// referenceErrors are foreign keys pointing at nothing, reported against the form field.
var referenceErrors = []struct {
	err   error
	field string
}{
	{employee.ErrInvalidDepartment, "departmentId"},
	{employee.ErrInvalidManager, "managerId"},
	{employee.ErrSelfManager, "managerId"},
	{contract.ErrInvalidEmployee, "employeeId"},
	{department.ErrInvalidManager, "managerId"},
	{project.ErrInvalidClient, "clientId"},
	{project.ErrInvalidDepartment, "departmentId"},
	{project.ErrInvalidChef, "chefId"},
	{project.ErrInvalidStatus, "status"},
	{project.ErrInvalidDateRange, "endDate"},
	{task.ErrInvalidEmployee, "employeeId"},
	{task.ErrInvalidProject, "projectId"},
	{ticket.ErrInvalidClient, "clientId"},
	{ticket.ErrInvalidEmployee, "employeeId"},
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	for _, ref := range referenceErrors {
		if errors.Is(err, ref.err) {
			ValidationError(w, map[string]string{ref.field: capitalize(ref.err.Error())})
			return
		}
	}

	switch {
	// Wizard
	case errors.Is(err, wizard.ErrStepOutOfRange):
		NotFound(w, "Wizard step not found")

	// Not found
	case errors.Is(err, employee.ErrEmployeeNotFound), errors.Is(err, dashboard.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, contract.ErrContractNotFound):
		NotFound(w, "Contract not found")
	case errors.Is(err, contract.ErrNoActiveContract):
		NotFound(w, "Employee has no active contract")
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, client.ErrClientNotFound):
		NotFound(w, "Client not found")
	case errors.Is(err, project.ErrProjectNotFound):
		NotFound(w, "Project not found")
	case errors.Is(err, task.ErrTaskNotFound):
		NotFound(w, "Task not found")
	case errors.Is(err, ticket.ErrTicketNotFound):
		NotFound(w, "Ticket not found")
	case errors.Is(err, report.ErrNoDataFound):
		NotFound(w, "No data found for the selected filters")

	// Conflicts
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrEmployeeInUse):
		Conflict(w, "Employee still leads a project")
	case errors.Is(err, department.ErrDepartmentNameExists):
		Conflict(w, "Department name already exists")
	case errors.Is(err, department.ErrDepartmentInUse):
		Conflict(w, "Department still has projects")
	case errors.Is(err, client.ErrClientEmailExists):
		Conflict(w, "Client email already registered")
	case errors.Is(err, client.ErrClientInUse):
		Conflict(w, "Client still has projects")

	// Analytics query errors
	case errors.Is(err, dashboard.ErrInvalidMonths),
		errors.Is(err, dashboard.ErrInvalidWeighting),
		errors.Is(err, dashboard.ErrInvalidDimension),
		errors.Is(err, dashboard.ErrInvalidLimit):
		BadRequest(w, capitalize(err.Error()), nil)

	case errors.Is(err, report.ErrReportGenerationFailed):
		InternalServerError(w, "Failed to generate report")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
