package contract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/contract"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/employee"
)

type ContractServiceImpl struct {
	contractRepo contract.ContractRepository
	employeeRepo employee.EmployeeRepository
	logger       *slog.Logger
}

func NewContractService(contractRepo contract.ContractRepository, employeeRepo employee.EmployeeRepository, logger *slog.Logger) contract.ContractService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContractServiceImpl{
		contractRepo: contractRepo,
		employeeRepo: employeeRepo,
		logger:       logger.With("component", "contract"),
	}
}

// ListContracts implements contract.ContractService.
func (s *ContractServiceImpl) ListContracts(ctx context.Context, filter contract.ListFilter) ([]contract.Contract, error) {
	contracts, err := s.contractRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	return contracts, nil
}

// GetContract implements contract.ContractService.
func (s *ContractServiceImpl) GetContract(ctx context.Context, id int64) (contract.Contract, error) {
	c, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, contract.ErrContractNotFound) {
			return contract.Contract{}, contract.ErrContractNotFound
		}
		return contract.Contract{}, fmt.Errorf("failed to get contract: %w", err)
	}
	return c, nil
}

// GetActiveContract implements contract.ContractService.
func (s *ContractServiceImpl) GetActiveContract(ctx context.Context, employeeID int64) (contract.Contract, error) {
	if err := s.checkEmployee(ctx, employeeID, employee.ErrEmployeeNotFound); err != nil {
		return contract.Contract{}, err
	}
	c, err := s.contractRepo.GetActiveByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, contract.ErrNoActiveContract) {
			return contract.Contract{}, contract.ErrNoActiveContract
		}
		return contract.Contract{}, fmt.Errorf("failed to get active contract: %w", err)
	}
	return c, nil
}

// CreateContract implements contract.ContractService.
func (s *ContractServiceImpl) CreateContract(ctx context.Context, req contract.CreateContractRequest) (contract.Contract, error) {
	if err := req.Validate(); err != nil {
		return contract.Contract{}, err
	}
	newContract := req.ToContract()
	if err := s.checkEmployee(ctx, newContract.EmployeeID, contract.ErrInvalidEmployee); err != nil {
		return contract.Contract{}, err
	}

	created, err := s.contractRepo.Create(ctx, newContract)
	if err != nil {
		return contract.Contract{}, fmt.Errorf("failed to create contract: %w", err)
	}
	s.logger.Info("contract created", "contract_id", created.ID, "employee_id", created.EmployeeID)
	return created, nil
}

// UpdateContract implements contract.ContractService.
func (s *ContractServiceImpl) UpdateContract(ctx context.Context, id int64, req contract.UpdateContractRequest) (contract.Contract, error) {
	existing, err := s.GetContract(ctx, id)
	if err != nil {
		return contract.Contract{}, err
	}

	terms := contract.TermsOf(existing)
	req.Apply(&terms)
	if err := terms.Validate().Err(); err != nil {
		return contract.Contract{}, err
	}

	updated := terms.ToContract()
	updated.ID = existing.ID
	updated.EmployeeID = existing.EmployeeID
	saved, err := s.contractRepo.Update(ctx, updated)
	if err != nil {
		return contract.Contract{}, fmt.Errorf("failed to update contract: %w", err)
	}
	s.logger.Info("contract updated", "contract_id", id)
	return saved, nil
}

// DeleteContract implements contract.ContractService.
func (s *ContractServiceImpl) DeleteContract(ctx context.Context, id int64) error {
	if err := s.contractRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, contract.ErrContractNotFound) {
			return contract.ErrContractNotFound
		}
		return fmt.Errorf("failed to delete contract: %w", err)
	}
	s.logger.Info("contract deleted", "contract_id", id)
	return nil
}

// checkEmployee returns missing when the employee does not exist.
func (s *ContractServiceImpl) checkEmployee(ctx context.Context, id int64, missing error) error {
	if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return missing
		}
		return fmt.Errorf("failed to get employee: %w", err)
	}
	return nil
}
