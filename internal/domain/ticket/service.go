package ticket

import "context"

type TicketService interface {
	ListTickets(ctx context.Context, filter ListFilter) ([]Ticket, error)
	GetTicket(ctx context.Context, id int64) (Ticket, error)
	CreateTicket(ctx context.Context, req CreateTicketRequest) (Ticket, error)
	// UpdateTicket merges the sent fields and re-validates the result
	UpdateTicket(ctx context.Context, id int64, req UpdateTicketRequest) (Ticket, error)
	// ResolveTicket sets the status to Resolved and stamps the resolution time
	ResolveTicket(ctx context.Context, id int64) (Ticket, error)
	DeleteTicket(ctx context.Context, id int64) error
}
