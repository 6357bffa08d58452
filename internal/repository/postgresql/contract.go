package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/contract"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/datetime"
	"github.com/jackc/pgx/v5"
)

const contractColumns = `contract_id, employee_id, contract_type, work_hours, salary,
	remote_available, start_date, end_date, benefits, status`

type contractRepositoryImpl struct {
	db *database.DB
}

func NewContractRepository(db *database.DB) contract.ContractRepository {
	return &contractRepositoryImpl{db: db}
}

func scanContract(row pgx.Row) (contract.Contract, error) {
	var c contract.Contract
	var endDate *time.Time
	err := row.Scan(
		&c.ID, &c.EmployeeID, &c.ContractType, &c.WorkHours, &c.Salary,
		&c.RemoteAvailable, &c.StartDate.Time, &endDate, &c.Benefits, &c.Status,
	)
	c.EndDate = datetime.Ptr(endDate)
	return c, err
}

func (r *contractRepositoryImpl) query(ctx context.Context, sql string, args ...any) ([]contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	defer rows.Close()

	contracts := []contract.Contract{}
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}

// List implements contract.ContractRepository.
func (r *contractRepositoryImpl) List(ctx context.Context, filter contract.ListFilter) ([]contract.Contract, error) {
	var where whereBuilder
	if filter.EmployeeID != nil {
		where.add("employee_id = ?", *filter.EmployeeID)
	}
	if filter.ContractType != nil {
		where.add("contract_type = ?", *filter.ContractType)
	}
	return r.query(ctx, `SELECT `+contractColumns+` FROM contracts`+where.String()+` ORDER BY contract_id`, where.args...)
}

// GetByID implements contract.ContractRepository.
func (r *contractRepositoryImpl) GetByID(ctx context.Context, id int64) (contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	c, err := scanContract(q.QueryRow(ctx, `SELECT `+contractColumns+` FROM contracts WHERE contract_id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return contract.Contract{}, contract.ErrContractNotFound
		}
		return contract.Contract{}, fmt.Errorf("failed to get contract with id %d: %w", id, err)
	}
	return c, nil
}

// GetActiveByEmployeeID implements contract.ContractRepository.
func (r *contractRepositoryImpl) GetActiveByEmployeeID(ctx context.Context, employeeID int64) (contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	c, err := scanContract(q.QueryRow(ctx, `SELECT `+contractColumns+` FROM contracts
		WHERE employee_id = $1 AND status = $2
		ORDER BY start_date DESC, contract_id DESC
		LIMIT 1`, employeeID, contract.StatusActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return contract.Contract{}, contract.ErrNoActiveContract
		}
		return contract.Contract{}, fmt.Errorf("failed to get active contract for employee %d: %w", employeeID, err)
	}
	return c, nil
}

// Create implements contract.ContractRepository.
func (r *contractRepositoryImpl) Create(ctx context.Context, c contract.Contract) (contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO contracts (
			employee_id, contract_type, work_hours, salary, remote_available,
			start_date, end_date, benefits, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + contractColumns

	created, err := scanContract(q.QueryRow(ctx, query,
		c.EmployeeID, c.ContractType, c.WorkHours, c.Salary, c.RemoteAvailable,
		c.StartDate.Time, datetime.Std(c.EndDate), c.Benefits, c.Status,
	))
	if err != nil {
		if foreignKeyConstraint(err) != "" {
			return contract.Contract{}, contract.ErrInvalidEmployee
		}
		return contract.Contract{}, fmt.Errorf("failed to create contract: %w", err)
	}
	return created, nil
}

// Update implements contract.ContractRepository. The employee of a contract never changes.
func (r *contractRepositoryImpl) Update(ctx context.Context, c contract.Contract) (contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE contracts SET
			contract_type = $1, work_hours = $2, salary = $3, remote_available = $4,
			start_date = $5, end_date = $6, benefits = $7, status = $8
		WHERE contract_id = $9
		RETURNING ` + contractColumns

	saved, err := scanContract(q.QueryRow(ctx, query,
		c.ContractType, c.WorkHours, c.Salary, c.RemoteAvailable,
		c.StartDate.Time, datetime.Std(c.EndDate), c.Benefits, c.Status, c.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return contract.Contract{}, contract.ErrContractNotFound
		}
		return contract.Contract{}, fmt.Errorf("failed to update contract with id %d: %w", c.ID, err)
	}
	return saved, nil
}

// Delete implements contract.ContractRepository.
func (r *contractRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM contracts WHERE contract_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete contract with id %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return contract.ErrContractNotFound
	}
	return nil
}

// ListByEmployeeID implements contract.ContractRepository.
func (r *contractRepositoryImpl) ListByEmployeeID(ctx context.Context, employeeID int64) ([]contract.Contract, error) {
	return r.query(ctx,
		`SELECT `+contractColumns+` FROM contracts WHERE employee_id = $1 ORDER BY start_date DESC, contract_id DESC`,
		employeeID,
	)
}
