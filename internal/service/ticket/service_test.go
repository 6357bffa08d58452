package ticket

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/ticket"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/datetime"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTicketRepo struct {
	tickets   []ticket.Ticket
	createErr error
	updateErr error
	resolves  int
}

func (r *fakeTicketRepo) List(ctx context.Context, filter ticket.ListFilter) ([]ticket.Ticket, error) {
	return r.tickets, nil
}

func (r *fakeTicketRepo) GetByID(ctx context.Context, id int64) (ticket.Ticket, error) {
	for _, t := range r.tickets {
		if t.ID == id {
			return t, nil
		}
	}
	return ticket.Ticket{}, ticket.ErrTicketNotFound
}

func (r *fakeTicketRepo) Create(ctx context.Context, t ticket.Ticket) (ticket.Ticket, error) {
	if r.createErr != nil {
		return ticket.Ticket{}, r.createErr
	}
	t.ID = int64(len(r.tickets) + 1)
	r.tickets = append(r.tickets, t)
	return t, nil
}

func (r *fakeTicketRepo) Update(ctx context.Context, t ticket.Ticket) (ticket.Ticket, error) {
	if r.updateErr != nil {
		return ticket.Ticket{}, r.updateErr
	}
	for i := range r.tickets {
		if r.tickets[i].ID == t.ID {
			r.tickets[i] = t
			return t, nil
		}
	}
	return ticket.Ticket{}, ticket.ErrTicketNotFound
}

func (r *fakeTicketRepo) Resolve(ctx context.Context, id int64, at time.Time) (ticket.Ticket, error) {
	r.resolves++
	for i := range r.tickets {
		if r.tickets[i].ID == id {
			r.tickets[i].Status = ticket.StatusResolved
			r.tickets[i].ResolvedAt = &datetime.Time{Time: at}
			return r.tickets[i], nil
		}
	}
	return ticket.Ticket{}, ticket.ErrTicketNotFound
}

func (r *fakeTicketRepo) Delete(ctx context.Context, id int64) error {
	for i, t := range r.tickets {
		if t.ID == id {
			r.tickets = append(r.tickets[:i], r.tickets[i+1:]...)
			return nil
		}
	}
	return ticket.ErrTicketNotFound
}

type fakeInvalidator struct {
	collections []dashboard.Collection
}

func (f *fakeInvalidator) Invalidate(collections ...dashboard.Collection) {
	f.collections = append(f.collections, collections...)
}

var now = time.Date(2025, time.June, 15, 9, 0, 0, 0, time.UTC)

func setup() (ticket.TicketService, *fakeTicketRepo, *fakeInvalidator) {
	repo := &fakeTicketRepo{}
	inv := &fakeInvalidator{}
	return NewTicketService(repo, inv, func() time.Time { return now }, nil), repo, inv
}

func TestCreateTicket(t *testing.T) {
	svc, _, inv := setup()

	created, err := svc.CreateTicket(context.Background(), ticket.CreateTicketRequest{
		Title:       "Login broken",
		Description: "500 on submit",
		ClientID:    "3",
	})
	require.NoError(t, err)
	assert.Equal(t, ticket.StatusOpen, created.Status)
	assert.True(t, now.Equal(created.CreatedAt.Time))
	require.NotNil(t, created.ClientID)
	assert.Nil(t, created.EmployeeID)
	assert.Nil(t, created.ResolvedAt)
	assert.Equal(t, []dashboard.Collection{dashboard.CollectionTickets}, inv.collections)
}

func TestCreateTicket_Errors(t *testing.T) {
	svc, repo, _ := setup()

	_, err := svc.CreateTicket(context.Background(), ticket.CreateTicketRequest{Status: "Pending"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has("title"))
	assert.True(t, verrs.Has("description"))
	assert.True(t, verrs.Has("status"))

	repo.createErr = ticket.ErrInvalidClient
	_, err = svc.CreateTicket(context.Background(), ticket.CreateTicketRequest{Title: "a", Description: "b", ClientID: "7"})
	assert.ErrorIs(t, err, ticket.ErrInvalidClient)
}

func TestResolveTicket(t *testing.T) {
	svc, repo, _ := setup()
	_, err := svc.CreateTicket(context.Background(), ticket.CreateTicketRequest{Title: "a", Description: "b"})
	require.NoError(t, err)
	_, err = svc.CreateTicket(context.Background(), ticket.CreateTicketRequest{Title: "c", Description: "d", Status: "Closed"})
	require.NoError(t, err)

	resolved, err := svc.ResolveTicket(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, ticket.StatusResolved, resolved.Status)
	require.NotNil(t, resolved.ResolvedAt)

	closed, err := svc.ResolveTicket(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, ticket.StatusClosed, closed.Status)
	assert.Equal(t, 1, repo.resolves)

	_, err = svc.ResolveTicket(context.Background(), 5)
	assert.ErrorIs(t, err, ticket.ErrTicketNotFound)
}

func TestDeleteTicket(t *testing.T) {
	svc, _, _ := setup()
	_, err := svc.CreateTicket(context.Background(), ticket.CreateTicketRequest{Title: "a", Description: "b"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTicket(context.Background(), 1))
	assert.ErrorIs(t, svc.DeleteTicket(context.Background(), 1), ticket.ErrTicketNotFound)
}

func strPtr(s string) *string { return &s }

func TestUpdateTicket(t *testing.T) {
	svc, repo, inv := setup()
	created := datetime.New(now.AddDate(0, 0, -5))
	resolved := datetime.New(now.AddDate(0, 0, -1))
	client := int64(3)
	repo.tickets = []ticket.Ticket{{
		ID: 1, Title: "Login broken", Description: "500 on submit", ClientID: &client,
		Status: ticket.StatusResolved, Priority: ticket.PriorityHigh, CreatedAt: created, ResolvedAt: &resolved,
	}}

	closed, err := svc.UpdateTicket(context.Background(), 1, ticket.UpdateTicketRequest{Status: strPtr(string(ticket.StatusClosed))})
	require.NoError(t, err)
	assert.Equal(t, ticket.StatusClosed, closed.Status)
	require.NotNil(t, closed.ResolvedAt)
	assert.True(t, resolved.Equal(closed.ResolvedAt.Time))
	assert.True(t, created.Equal(closed.CreatedAt.Time))
	require.NotNil(t, closed.ClientID)
	assert.Equal(t, client, *closed.ClientID)

	unassigned := validator.FormValue("")
	reopened, err := svc.UpdateTicket(context.Background(), 1, ticket.UpdateTicketRequest{
		Status:   strPtr(string(ticket.StatusReopened)),
		ClientID: &unassigned,
	})
	require.NoError(t, err)
	assert.Nil(t, reopened.ResolvedAt)
	assert.Nil(t, reopened.ClientID)
	assert.Equal(t, ticket.PriorityHigh, reopened.Priority)
	assert.Equal(t, reopened, repo.tickets[0])
	assert.Equal(t, []dashboard.Collection{dashboard.CollectionTickets, dashboard.CollectionTickets}, inv.collections)
}

func TestUpdateTicket_Errors(t *testing.T) {
	svc, repo, inv := setup()
	repo.tickets = []ticket.Ticket{{ID: 1, Title: "Login broken", Description: "500 on submit", Status: ticket.StatusOpen, Priority: ticket.PriorityLow, CreatedAt: datetime.New(now)}}

	_, err := svc.UpdateTicket(context.Background(), 1, ticket.UpdateTicketRequest{Description: strPtr(" ")})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has("description"))

	repo.updateErr = ticket.ErrInvalidEmployee
	employeeID := validator.FormValue("42")
	_, err = svc.UpdateTicket(context.Background(), 1, ticket.UpdateTicketRequest{EmployeeID: &employeeID})
	assert.ErrorIs(t, err, ticket.ErrInvalidEmployee)

	_, err = svc.UpdateTicket(context.Background(), 2, ticket.UpdateTicketRequest{})
	assert.ErrorIs(t, err, ticket.ErrTicketNotFound)
	assert.Empty(t, inv.collections)
}
