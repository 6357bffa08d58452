package ticket

import (
	"context"
	"time"
)

type TicketRepository interface {
	List(ctx context.Context, filter ListFilter) ([]Ticket, error)
	GetByID(ctx context.Context, id int64) (Ticket, error)
	Create(ctx context.Context, t Ticket) (Ticket, error)
	// Update saves every field except the creation time
	Update(ctx context.Context, t Ticket) (Ticket, error)
	// Resolve marks the ticket resolved at the given time
	Resolve(ctx context.Context, id int64, at time.Time) (Ticket, error)
	Delete(ctx context.Context, id int64) error
}
