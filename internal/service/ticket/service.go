package ticket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/ticket"
)

type TicketServiceImpl struct {
	ticketRepo  ticket.TicketRepository
	invalidator dashboard.Invalidator
	now         func() time.Time
	logger      *slog.Logger
}

func NewTicketService(ticketRepo ticket.TicketRepository, invalidator dashboard.Invalidator, now func() time.Time, logger *slog.Logger) ticket.TicketService {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TicketServiceImpl{
		ticketRepo:  ticketRepo,
		invalidator: invalidator,
		now:         now,
		logger:      logger.With("component", "ticket"),
	}
}

func (s *TicketServiceImpl) ListTickets(ctx context.Context, filter ticket.ListFilter) ([]ticket.Ticket, error) {
	tickets, err := s.ticketRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	return tickets, nil
}

func (s *TicketServiceImpl) GetTicket(ctx context.Context, id int64) (ticket.Ticket, error) {
	t, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ticket.ErrTicketNotFound) {
			return ticket.Ticket{}, ticket.ErrTicketNotFound
		}
		return ticket.Ticket{}, fmt.Errorf("failed to get ticket: %w", err)
	}
	return t, nil
}

func (s *TicketServiceImpl) CreateTicket(ctx context.Context, req ticket.CreateTicketRequest) (ticket.Ticket, error) {
	if err := req.Validate(); err != nil {
		return ticket.Ticket{}, err
	}

	created, err := s.ticketRepo.Create(ctx, req.ToTicket(s.now()))
	if err != nil {
		if errors.Is(err, ticket.ErrInvalidClient) || errors.Is(err, ticket.ErrInvalidEmployee) {
			return ticket.Ticket{}, err
		}
		return ticket.Ticket{}, fmt.Errorf("failed to create ticket: %w", err)
	}

	s.invalidator.Invalidate(dashboard.CollectionTickets)
	s.logger.Info("ticket created", "ticket_id", created.ID)
	return created, nil
}

// UpdateTicket keeps the resolution time of a ticket that stays resolved or closed, stamps
// one that becomes resolved, and clears it when the ticket is reopened.
func (s *TicketServiceImpl) UpdateTicket(ctx context.Context, id int64, req ticket.UpdateTicketRequest) (ticket.Ticket, error) {
	existing, err := s.GetTicket(ctx, id)
	if err != nil {
		return ticket.Ticket{}, err
	}

	draft := ticket.DraftFrom(existing)
	req.Apply(&draft)
	if err := draft.Validate(); err != nil {
		return ticket.Ticket{}, err
	}

	updated := draft.ToTicket(s.now())
	updated.ID = id
	updated.CreatedAt = existing.CreatedAt
	if updated.IsResolved() && existing.IsResolved() {
		updated.ResolvedAt = existing.ResolvedAt
	}

	saved, err := s.ticketRepo.Update(ctx, updated)
	if err != nil {
		if errors.Is(err, ticket.ErrInvalidClient) || errors.Is(err, ticket.ErrInvalidEmployee) || errors.Is(err, ticket.ErrTicketNotFound) {
			return ticket.Ticket{}, err
		}
		return ticket.Ticket{}, fmt.Errorf("failed to update ticket: %w", err)
	}

	s.invalidator.Invalidate(dashboard.CollectionTickets)
	s.logger.Info("ticket updated", "ticket_id", id, "status", saved.Status)
	return saved, nil
}

// ResolveTicket leaves resolved and closed tickets untouched.
func (s *TicketServiceImpl) ResolveTicket(ctx context.Context, id int64) (ticket.Ticket, error) {
	current, err := s.GetTicket(ctx, id)
	if err != nil {
		return ticket.Ticket{}, err
	}
	if current.IsResolved() {
		return current, nil
	}

	resolved, err := s.ticketRepo.Resolve(ctx, id, s.now())
	if err != nil {
		if errors.Is(err, ticket.ErrTicketNotFound) {
			return ticket.Ticket{}, ticket.ErrTicketNotFound
		}
		return ticket.Ticket{}, fmt.Errorf("failed to resolve ticket: %w", err)
	}

	s.invalidator.Invalidate(dashboard.CollectionTickets)
	s.logger.Info("ticket resolved", "ticket_id", id)
	return resolved, nil
}

func (s *TicketServiceImpl) DeleteTicket(ctx context.Context, id int64) error {
	if err := s.ticketRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, ticket.ErrTicketNotFound) {
			return ticket.ErrTicketNotFound
		}
		return fmt.Errorf("failed to delete ticket: %w", err)
	}

	s.invalidator.Invalidate(dashboard.CollectionTickets)
	s.logger.Info("ticket deleted", "ticket_id", id)
	return nil
}
