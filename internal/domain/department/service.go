package department

import "context"

type DepartmentService interface {
	ListDepartments(ctx context.Context) ([]Department, error)
	// ListWithManagers returns every department with its head's full name
	ListWithManagers(ctx context.Context) ([]DepartmentWithManager, error)
	GetDepartment(ctx context.Context, id int64) (Department, error)
	CreateDepartment(ctx context.Context, req CreateDepartmentRequest) (Department, error)
	// UpdateDepartment merges the sent fields and re-validates the result
	UpdateDepartment(ctx context.Context, id int64, req UpdateDepartmentRequest) (Department, error)
	DeleteDepartment(ctx context.Context, id int64) error
}
