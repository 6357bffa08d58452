package http

import (
	"net/http"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DashboardHandler interface {
	// GetDashboard returns combined dashboard data
	GetDashboard(w http.ResponseWriter, r *http.Request)
	// GetOverview returns the KPI cards
	GetOverview(w http.ResponseWriter, r *http.Request)
	// GetEmployeeRates returns completion and resolution rates for one employee
	GetEmployeeRates(w http.ResponseWriter, r *http.Request)
	// GetDistribution returns one chart by dimension
	GetDistribution(w http.ResponseWriter, r *http.Request)
	GetTrend(w http.ResponseWriter, r *http.Request)
	GetRadar(w http.ResponseWriter, r *http.Request)
	GetTopPerformers(w http.ResponseWriter, r *http.Request)
	// Refresh refetches every collection
	Refresh(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetDashboard handles GET /analytics/dashboard
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	q, ok := parseQuery(w, r)
	if !ok {
		return
	}

	result, err := h.dashboardService.GetDashboard(r.Context(), q)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{
		TotalItems: result.Overview.TotalEmployees,
		SnapshotID: result.Snapshot.ID,
	})
}

// GetOverview handles GET /analytics/overview
func (h *dashboardHandlerImpl) GetOverview(w http.ResponseWriter, r *http.Request) {
	q, ok := parseQuery(w, r)
	if !ok {
		return
	}

	result, err := h.dashboardService.GetOverview(r.Context(), q)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetEmployeeRates handles GET /analytics/employees/{id}/rates
func (h *dashboardHandlerImpl) GetEmployeeRates(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id", "Employee")
	if !ok {
		return
	}

	result, err := h.dashboardService.GetEmployeeRates(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetDistribution handles GET /analytics/distribution/{dimension}
func (h *dashboardHandlerImpl) GetDistribution(w http.ResponseWriter, r *http.Request) {
	q, ok := parseQuery(w, r)
	if !ok {
		return
	}
	dim := dashboard.Dimension(chi.URLParam(r, "dimension"))

	result, err := h.dashboardService.GetDistribution(r.Context(), dim, q)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetTrend handles GET /analytics/trend?months=6|12
func (h *dashboardHandlerImpl) GetTrend(w http.ResponseWriter, r *http.Request) {
	q, ok := parseQuery(w, r)
	if !ok {
		return
	}

	result, err := h.dashboardService.GetTrend(r.Context(), q)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetRadar handles GET /analytics/radar?weighting=equal|volume
func (h *dashboardHandlerImpl) GetRadar(w http.ResponseWriter, r *http.Request) {
	q, ok := parseQuery(w, r)
	if !ok {
		return
	}

	result, err := h.dashboardService.GetRadar(r.Context(), q)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetTopPerformers handles GET /analytics/top-performers?limit=N
func (h *dashboardHandlerImpl) GetTopPerformers(w http.ResponseWriter, r *http.Request) {
	q, ok := parseQuery(w, r)
	if !ok {
		return
	}

	result, err := h.dashboardService.GetTopPerformers(r.Context(), q)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Refresh handles POST /analytics/refresh
func (h *dashboardHandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.Refresh(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Snapshot refreshed", result)
}
