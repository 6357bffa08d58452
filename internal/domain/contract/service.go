package contract

import "context"

// ContractService manages contracts outside the add-employee flow
type ContractService interface {
	ListContracts(ctx context.Context, filter ListFilter) ([]Contract, error)
	GetContract(ctx context.Context, id int64) (Contract, error)
	// GetActiveContract returns the employee's current Active contract
	GetActiveContract(ctx context.Context, employeeID int64) (Contract, error)
	CreateContract(ctx context.Context, req CreateContractRequest) (Contract, error)
	// UpdateContract re-validates the merged terms before saving
	UpdateContract(ctx context.Context, id int64, req UpdateContractRequest) (Contract, error)
	DeleteContract(ctx context.Context, id int64) error
}
