package contract

import "context"

type ContractRepository interface {
	List(ctx context.Context, filter ListFilter) ([]Contract, error)
	GetByID(ctx context.Context, id int64) (Contract, error)
	// GetActiveByEmployeeID returns the employee's most recent Active contract
	GetActiveByEmployeeID(ctx context.Context, employeeID int64) (Contract, error)
	Create(ctx context.Context, c Contract) (Contract, error)
	Update(ctx context.Context, c Contract) (Contract, error)
	Delete(ctx context.Context, id int64) error
	ListByEmployeeID(ctx context.Context, employeeID int64) ([]Contract, error)
}
