package department

import "context"

type DepartmentRepository interface {
	List(ctx context.Context) ([]Department, error)
	ListWithManagers(ctx context.Context) ([]DepartmentWithManager, error)
	GetByID(ctx context.Context, id int64) (Department, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, d Department) (Department, error)
	Update(ctx context.Context, d Department) (Department, error)
	Delete(ctx context.Context, id int64) error
}
