package ticket

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/datetime"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/validator"
)

type CreateTicketRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	ClientID    validator.FormValue `json:"clientId"`
	EmployeeID  validator.FormValue `json:"employeeId"`
	Status      string              `json:"status"`
	Priority    string              `json:"priority"`
}

func (r CreateTicketRequest) Validate() error {
	var errs validator.ValidationErrors
	errs.Required("title", "Title", r.Title)
	errs.Required("description", "Description", r.Description)
	if !r.ClientID.IsEmpty() {
		if _, ok := r.ClientID.ID(); !ok {
			errs.Add("clientId", "Client is invalid")
		}
	}
	if !r.EmployeeID.IsEmpty() {
		if _, ok := r.EmployeeID.ID(); !ok {
			errs.Add("employeeId", "Employee is invalid")
		}
	}
	if !validator.IsEmpty(r.Status) {
		if _, ok := ParseStatus(strings.TrimSpace(r.Status)); !ok {
			errs.Add("status", "Status is invalid")
		}
	}
	if !validator.IsEmpty(r.Priority) {
		if _, ok := ParsePriority(strings.TrimSpace(r.Priority)); !ok {
			errs.Add("priority", "Priority must be Low, Medium or High")
		}
	}
	return errs.Err()
}

func (r CreateTicketRequest) ToTicket(now time.Time) Ticket {
	t := Ticket{
		Title:       strings.TrimSpace(r.Title),
		Description: strings.TrimSpace(r.Description),
		Status:      StatusOpen,
		Priority:    PriorityMedium,
		CreatedAt:   datetime.New(now),
	}
	if id, ok := r.ClientID.ID(); ok {
		t.ClientID = &id
	}
	if id, ok := r.EmployeeID.ID(); ok {
		t.EmployeeID = &id
	}
	if s, ok := ParseStatus(strings.TrimSpace(r.Status)); ok {
		t.Status = s
	}
	if p, ok := ParsePriority(strings.TrimSpace(r.Priority)); ok {
		t.Priority = p
	}
	if t.IsResolved() {
		t.ResolvedAt = &datetime.Time{Time: now}
	}
	return t
}

type UpdateTicketRequest struct {
	Title       *string              `json:"title,omitempty"`
	Description *string              `json:"description,omitempty"`
	ClientID    *validator.FormValue `json:"clientId,omitempty"`
	EmployeeID  *validator.FormValue `json:"employeeId,omitempty"`
	Status      *string              `json:"status,omitempty"`
	Priority    *string              `json:"priority,omitempty"`
}

// DraftFrom renders a stored ticket as the create form.
func DraftFrom(t Ticket) CreateTicketRequest {
	return CreateTicketRequest{
		Title:       t.Title,
		Description: t.Description,
		ClientID:    validator.IDValue(t.ClientID),
		EmployeeID:  validator.IDValue(t.EmployeeID),
		Status:      string(t.Status),
		Priority:    string(t.Priority),
	}
}

func (r UpdateTicketRequest) Apply(draft *CreateTicketRequest) {
	validator.Overlay(&draft.Title, r.Title)
	validator.Overlay(&draft.Description, r.Description)
	validator.Overlay(&draft.ClientID, r.ClientID)
	validator.Overlay(&draft.EmployeeID, r.EmployeeID)
	validator.Overlay(&draft.Status, r.Status)
	validator.Overlay(&draft.Priority, r.Priority)
}
