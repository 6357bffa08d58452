package http

import (
	"net/http"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/contract"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ContractHandler interface {
	ListContracts(w http.ResponseWriter, r *http.Request)
	ListByType(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	GetActiveContract(w http.ResponseWriter, r *http.Request)
	GetContract(w http.ResponseWriter, r *http.Request)
	CreateContract(w http.ResponseWriter, r *http.Request)
	UpdateContract(w http.ResponseWriter, r *http.Request)
	DeleteContract(w http.ResponseWriter, r *http.Request)
}

type contractHandlerImpl struct {
	contractService contract.ContractService
}

func NewContractHandler(contractService contract.ContractService) ContractHandler {
	return &contractHandlerImpl{contractService: contractService}
}

func (h *contractHandlerImpl) list(w http.ResponseWriter, r *http.Request, filter contract.ListFilter) {
	contracts, err := h.contractService.ListContracts(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, contracts, &response.Meta{TotalItems: len(contracts)})
}

// ListContracts accepts optional employee_id and type filters.
func (h *contractHandlerImpl) ListContracts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter contract.ListFilter
	employeeID, err := optionalID(q, "employee_id")
	if err != nil {
		response.BadRequest(w, "Invalid query parameters", map[string]string{"employee_id": "Must be a number"})
		return
	}
	filter.EmployeeID = employeeID
	if raw := q.Get("type"); raw != "" {
		ct, ok := contract.ParseContractType(raw)
		if !ok {
			response.BadRequest(w, "Invalid query parameters", map[string]string{"type": "Unknown contract type"})
			return
		}
		filter.ContractType = &ct
	}
	h.list(w, r, filter)
}

func (h *contractHandlerImpl) ListByType(w http.ResponseWriter, r *http.Request) {
	ct, ok := contract.ParseContractType(chi.URLParam(r, "contractType"))
	if !ok {
		response.BadRequest(w, "Unknown contract type", nil)
		return
	}
	h.list(w, r, contract.ListFilter{ContractType: &ct})
}

func (h *contractHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := idParam(w, r, "employeeId", "Employee")
	if !ok {
		return
	}
	h.list(w, r, contract.ListFilter{EmployeeID: &employeeID})
}

func (h *contractHandlerImpl) GetActiveContract(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := idParam(w, r, "employeeId", "Employee")
	if !ok {
		return
	}
	result, err := h.contractService.GetActiveContract(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *contractHandlerImpl) GetContract(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id", "Contract")
	if !ok {
		return
	}
	result, err := h.contractService.GetContract(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *contractHandlerImpl) CreateContract(w http.ResponseWriter, r *http.Request) {
	var req contract.CreateContractRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.contractService.CreateContract(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Contract created successfully", result)
}

func (h *contractHandlerImpl) UpdateContract(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id", "Contract")
	if !ok {
		return
	}
	var req contract.UpdateContractRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.contractService.UpdateContract(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Contract updated successfully", result)
}

func (h *contractHandlerImpl) DeleteContract(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id", "Contract")
	if !ok {
		return
	}
	if err := h.contractService.DeleteContract(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Contract deleted successfully", nil)
}
