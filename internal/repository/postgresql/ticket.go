package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/ticket"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/datetime"
	"github.com/jackc/pgx/v5"
)

const ticketColumns = `ticket_id, title, description, client_id, employee_id, status, priority,
	created_at, resolved_at`

type ticketRepositoryImpl struct {
	db *database.DB
}

func NewTicketRepository(db *database.DB) ticket.TicketRepository {
	return &ticketRepositoryImpl{db: db}
}

func scanTicket(row pgx.Row) (ticket.Ticket, error) {
	var t ticket.Ticket
	var resolvedAt *time.Time
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.ClientID, &t.EmployeeID, &t.Status, &t.Priority,
		&t.CreatedAt.Time, &resolvedAt,
	)
	t.ResolvedAt = datetime.Ptr(resolvedAt)
	return t, err
}

// List implements ticket.TicketRepository.
func (r *ticketRepositoryImpl) List(ctx context.Context, filter ticket.ListFilter) ([]ticket.Ticket, error) {
	q := GetQuerier(ctx, r.db)

	var where whereBuilder
	if filter.ClientID != nil {
		where.add("client_id = ?", *filter.ClientID)
	}
	if filter.EmployeeID != nil {
		where.add("employee_id = ?", *filter.EmployeeID)
	}
	if filter.Status != nil {
		where.add("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		where.add("priority = ?", *filter.Priority)
	}
	if title := strings.TrimSpace(filter.Title); title != "" {
		where.add("title ILIKE ?", "%"+title+"%")
	}

	rows, err := q.Query(ctx, `SELECT `+ticketColumns+` FROM tickets`+where.String()+` ORDER BY ticket_id`, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer rows.Close()

	tickets := []ticket.Ticket{}
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

// GetByID implements ticket.TicketRepository.
func (r *ticketRepositoryImpl) GetByID(ctx context.Context, id int64) (ticket.Ticket, error) {
	q := GetQuerier(ctx, r.db)

	t, err := scanTicket(q.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE ticket_id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ticket.Ticket{}, ticket.ErrTicketNotFound
		}
		return ticket.Ticket{}, fmt.Errorf("failed to get ticket with id %d: %w", id, err)
	}
	return t, nil
}

// Create implements ticket.TicketRepository.
func (r *ticketRepositoryImpl) Create(ctx context.Context, t ticket.Ticket) (ticket.Ticket, error) {
	q := GetQuerier(ctx, r.db)

	created, err := scanTicket(q.QueryRow(ctx, `
		INSERT INTO tickets (
			title, description, client_id, employee_id, status, priority, created_at, resolved_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+ticketColumns,
		t.Title, t.Description, t.ClientID, t.EmployeeID, t.Status, t.Priority,
		t.CreatedAt.Time, datetime.Std(t.ResolvedAt),
	))
	if err != nil {
		if mapped := ticketWriteError(err); mapped != nil {
			return ticket.Ticket{}, mapped
		}
		return ticket.Ticket{}, fmt.Errorf("failed to create ticket: %w", err)
	}
	return created, nil
}

// Update implements ticket.TicketRepository.
func (r *ticketRepositoryImpl) Update(ctx context.Context, t ticket.Ticket) (ticket.Ticket, error) {
	q := GetQuerier(ctx, r.db)

	saved, err := scanTicket(q.QueryRow(ctx, `
		UPDATE tickets SET
			title = $1, description = $2, client_id = $3, employee_id = $4,
			status = $5, priority = $6, resolved_at = $7
		WHERE ticket_id = $8
		RETURNING `+ticketColumns,
		t.Title, t.Description, t.ClientID, t.EmployeeID, t.Status, t.Priority,
		datetime.Std(t.ResolvedAt), t.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ticket.Ticket{}, ticket.ErrTicketNotFound
		}
		if mapped := ticketWriteError(err); mapped != nil {
			return ticket.Ticket{}, mapped
		}
		return ticket.Ticket{}, fmt.Errorf("failed to update ticket with id %d: %w", t.ID, err)
	}
	return saved, nil
}

func ticketWriteError(err error) error {
	switch c := foreignKeyConstraint(err); {
	case strings.Contains(c, "client"):
		return ticket.ErrInvalidClient
	case strings.Contains(c, "employee"):
		return ticket.ErrInvalidEmployee
	}
	return nil
}

// Resolve implements ticket.TicketRepository.
func (r *ticketRepositoryImpl) Resolve(ctx context.Context, id int64, at time.Time) (ticket.Ticket, error) {
	q := GetQuerier(ctx, r.db)

	t, err := scanTicket(q.QueryRow(ctx, `
		UPDATE tickets SET status = $1, resolved_at = $2
		WHERE ticket_id = $3
		RETURNING `+ticketColumns,
		ticket.StatusResolved, at, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ticket.Ticket{}, ticket.ErrTicketNotFound
		}
		return ticket.Ticket{}, fmt.Errorf("failed to resolve ticket with id %d: %w", id, err)
	}
	return t, nil
}

// Delete implements ticket.TicketRepository.
func (r *ticketRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM tickets WHERE ticket_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete ticket with id %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ticket.ErrTicketNotFound
	}
	return nil
}
