package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const departmentColumns = `department_id, department_name, description, head_employee_id`

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

func scanDepartment(row pgx.Row) (department.Department, error) {
	var d department.Department
	err := row.Scan(&d.ID, &d.DepartmentName, &d.Description, &d.ManagerID)
	return d, err
}

// List implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) List(ctx context.Context) ([]department.Department, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+departmentColumns+` FROM departments ORDER BY department_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	departments := []department.Department{}
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

// ListWithManagers implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) ListWithManagers(ctx context.Context) ([]department.DepartmentWithManager, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d.department_id, d.department_name, d.head_employee_id,
			CASE WHEN e.employee_id IS NULL THEN NULL
				ELSE TRIM(e.first_name || ' ' || e.last_name) END AS manager_full_name
		FROM departments d
		LEFT JOIN employees e ON e.employee_id = d.head_employee_id
		ORDER BY d.department_id
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments with managers: %w", err)
	}
	defer rows.Close()

	departments := []department.DepartmentWithManager{}
	for rows.Next() {
		var d department.DepartmentWithManager
		if err := rows.Scan(&d.ID, &d.DepartmentName, &d.ManagerID, &d.ManagerFullName); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

// GetByID implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) GetByID(ctx context.Context, id int64) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	d, err := scanDepartment(q.QueryRow(ctx, `SELECT `+departmentColumns+` FROM departments WHERE department_id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, fmt.Errorf("failed to get department with id %d: %w", id, err)
	}
	return d, nil
}

// ExistsByName implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) ExistsByName(ctx context.Context, name string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM departments WHERE LOWER(department_name) = LOWER($1))`,
		strings.TrimSpace(name),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check department name: %w", err)
	}
	return exists, nil
}

// Create implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Create(ctx context.Context, d department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	created, err := scanDepartment(q.QueryRow(ctx, `
		INSERT INTO departments (department_name, description, head_employee_id)
		VALUES ($1, $2, $3)
		RETURNING `+departmentColumns,
		d.DepartmentName, d.Description, d.ManagerID,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return department.Department{}, department.ErrDepartmentNameExists
		}
		if foreignKeyConstraint(err) != "" {
			return department.Department{}, department.ErrInvalidManager
		}
		return department.Department{}, fmt.Errorf("failed to create department: %w", err)
	}
	return created, nil
}

// Update implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Update(ctx context.Context, d department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	saved, err := scanDepartment(q.QueryRow(ctx, `
		UPDATE departments SET department_name = $1, description = $2, head_employee_id = $3
		WHERE department_id = $4
		RETURNING `+departmentColumns,
		d.DepartmentName, d.Description, d.ManagerID, d.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		if isUniqueViolation(err) {
			return department.Department{}, department.ErrDepartmentNameExists
		}
		if foreignKeyConstraint(err) != "" {
			return department.Department{}, department.ErrInvalidManager
		}
		return department.Department{}, fmt.Errorf("failed to update department with id %d: %w", d.ID, err)
	}
	return saved, nil
}

// Delete implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM departments WHERE department_id = $1`, id)
	if err != nil {
		if foreignKeyConstraint(err) != "" {
			return department.ErrDepartmentInUse
		}
		return fmt.Errorf("failed to delete department with id %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}
	return nil
}
