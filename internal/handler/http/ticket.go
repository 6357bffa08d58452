package http

import (
	"net/http"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/ticket"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/handler/http/response"
)

type TicketHandler interface {
	ListTickets(w http.ResponseWriter, r *http.Request)
	GetTicket(w http.ResponseWriter, r *http.Request)
	CreateTicket(w http.ResponseWriter, r *http.Request)
	ResolveTicket(w http.ResponseWriter, r *http.Request)
	UpdateTicket(w http.ResponseWriter, r *http.Request)
	DeleteTicket(w http.ResponseWriter, r *http.Request)
}

type ticketHandlerImpl struct {
	ticketService ticket.TicketService
}

func NewTicketHandler(ticketService ticket.TicketService) TicketHandler {
	return &ticketHandlerImpl{ticketService: ticketService}
}

// ListTickets implements TicketHandler
func (h *ticketHandlerImpl) ListTickets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var f ticket.ListFilter
	details := map[string]string{}

	var err error
	if f.ClientID, err = optionalID(q, "client_id"); err != nil {
		details["client_id"] = "Must be a number"
	}
	if f.EmployeeID, err = optionalID(q, "employee_id"); err != nil {
		details["employee_id"] = "Must be a number"
	}
	if s := q.Get("status"); s != "" {
		status, ok := ticket.ParseStatus(s)
		if !ok {
			details["status"] = "Unknown ticket status"
		}
		f.Status = &status
	}
	if p := q.Get("priority"); p != "" {
		priority, ok := ticket.ParsePriority(p)
		if !ok {
			details["priority"] = "Unknown ticket priority"
		}
		f.Priority = &priority
	}
	f.Title = q.Get("title")

	if len(details) > 0 {
		response.BadRequest(w, "Invalid query parameters", details)
		return
	}

	tickets, err := h.ticketService.ListTickets(r.Context(), f)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, tickets, &response.Meta{TotalItems: len(tickets)})
}

func (h *ticketHandlerImpl) GetTicket(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id", "Ticket")
	if !ok {
		return
	}
	result, err := h.ticketService.GetTicket(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *ticketHandlerImpl) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var req ticket.CreateTicketRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.ticketService.CreateTicket(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Ticket created successfully", result)
}

// ResolveTicket implements TicketHandler
func (h *ticketHandlerImpl) ResolveTicket(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id", "Ticket")
	if !ok {
		return
	}
	result, err := h.ticketService.ResolveTicket(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Ticket resolved", result)
}

func (h *ticketHandlerImpl) UpdateTicket(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id", "Ticket")
	if !ok {
		return
	}
	var req ticket.UpdateTicketRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.ticketService.UpdateTicket(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Ticket updated successfully", result)
}

func (h *ticketHandlerImpl) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id", "Ticket")
	if !ok {
		return
	}
	if err := h.ticketService.DeleteTicket(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Ticket deleted successfully", nil)
}
