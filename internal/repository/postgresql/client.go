package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/client"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/datetime"
	"github.com/jackc/pgx/v5"
)

const clientColumns = `client_id, client_name, contact_person, email, phone, contract_date`

type clientRepositoryImpl struct {
	db *database.DB
}

func NewClientRepository(db *database.DB) client.ClientRepository {
	return &clientRepositoryImpl{db: db}
}

func scanClient(row pgx.Row) (client.Client, error) {
	var c client.Client
	var contractDate *time.Time
	err := row.Scan(&c.ID, &c.ClientName, &c.ContactPerson, &c.Email, &c.Phone, &contractDate)
	c.ContractDate = datetime.Ptr(contractDate)
	return c, err
}

// List implements client.ClientRepository.
func (r *clientRepositoryImpl) List(ctx context.Context) ([]client.Client, error) {
	return r.query(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY client_id`)
}

// SearchByName implements client.ClientRepository.
func (r *clientRepositoryImpl) SearchByName(ctx context.Context, name string) ([]client.Client, error) {
	return r.query(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE client_name ILIKE $1 ORDER BY client_id`,
		"%"+strings.TrimSpace(name)+"%",
	)
}

func (r *clientRepositoryImpl) query(ctx context.Context, sql string, args ...any) ([]client.Client, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	clients := []client.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// GetByID implements client.ClientRepository.
func (r *clientRepositoryImpl) GetByID(ctx context.Context, id int64) (client.Client, error) {
	q := GetQuerier(ctx, r.db)

	c, err := scanClient(q.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE client_id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return client.Client{}, client.ErrClientNotFound
		}
		return client.Client{}, fmt.Errorf("failed to get client with id %d: %w", id, err)
	}
	return c, nil
}

// ExistsByEmail implements client.ClientRepository.
func (r *clientRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM clients WHERE LOWER(email) = LOWER($1))`,
		strings.TrimSpace(email),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check client email: %w", err)
	}
	return exists, nil
}

// Create implements client.ClientRepository.
func (r *clientRepositoryImpl) Create(ctx context.Context, c client.Client) (client.Client, error) {
	q := GetQuerier(ctx, r.db)

	created, err := scanClient(q.QueryRow(ctx, `
		INSERT INTO clients (client_name, contact_person, email, phone, contract_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+clientColumns,
		c.ClientName, c.ContactPerson, c.Email, c.Phone, datetime.Std(c.ContractDate),
	))
	if err != nil {
		if isUniqueViolation(err) {
			return client.Client{}, client.ErrClientEmailExists
		}
		return client.Client{}, fmt.Errorf("failed to create client: %w", err)
	}
	return created, nil
}

// Update implements client.ClientRepository.
func (r *clientRepositoryImpl) Update(ctx context.Context, c client.Client) (client.Client, error) {
	q := GetQuerier(ctx, r.db)

	saved, err := scanClient(q.QueryRow(ctx, `
		UPDATE clients SET client_name = $1, contact_person = $2, email = $3, phone = $4, contract_date = $5
		WHERE client_id = $6
		RETURNING `+clientColumns,
		c.ClientName, c.ContactPerson, c.Email, c.Phone, datetime.Std(c.ContractDate), c.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return client.Client{}, client.ErrClientNotFound
		}
		if isUniqueViolation(err) {
			return client.Client{}, client.ErrClientEmailExists
		}
		return client.Client{}, fmt.Errorf("failed to update client with id %d: %w", c.ID, err)
	}
	return saved, nil
}

// Delete implements client.ClientRepository.
func (r *clientRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM clients WHERE client_id = $1`, id)
	if err != nil {
		if foreignKeyConstraint(err) != "" {
			return client.ErrClientInUse
		}
		return fmt.Errorf("failed to delete client with id %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return client.ErrClientNotFound
	}
	return nil
}
