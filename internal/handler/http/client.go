package http

import (
	"net/http"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/client"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/handler/http/response"
)

type ClientHandler interface {
	ListClients(w http.ResponseWriter, r *http.Request)
	SearchClients(w http.ResponseWriter, r *http.Request)
	GetClient(w http.ResponseWriter, r *http.Request)
	CreateClient(w http.ResponseWriter, r *http.Request)
	UpdateClient(w http.ResponseWriter, r *http.Request)
	DeleteClient(w http.ResponseWriter, r *http.Request)
	ValidateStep(w http.ResponseWriter, r *http.Request)
}

type clientHandlerImpl struct {
	clientService client.ClientService
}

func NewClientHandler(clientService client.ClientService) ClientHandler {
	return &clientHandlerImpl{clientService: clientService}
}

func (h *clientHandlerImpl) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clientService.ListClients(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, clients, &response.Meta{TotalItems: len(clients)})
}

// SearchClients matches ?name= against client names; a blank name lists every client.
func (h *clientHandlerImpl) SearchClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clientService.SearchClients(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, clients, &response.Meta{TotalItems: len(clients)})
}

func (h *clientHandlerImpl) GetClient(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id", "Client")
	if !ok {
		return
	}
	result, err := h.clientService.GetClient(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *clientHandlerImpl) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req client.CreateClientRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.clientService.CreateClient(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Client created successfully", result)
}

func (h *clientHandlerImpl) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id", "Client")
	if !ok {
		return
	}
	var req client.UpdateClientRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.clientService.UpdateClient(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Client updated successfully", result)
}

func (h *clientHandlerImpl) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id", "Client")
	if !ok {
		return
	}
	if err := h.clientService.DeleteClient(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Client deleted successfully", nil)
}

func (h *clientHandlerImpl) ValidateStep(w http.ResponseWriter, r *http.Request) {
	step, ok := stepParam(w, r)
	if !ok {
		return
	}
	var req client.CreateClientRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.clientService.ValidateStep(r.Context(), step, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
