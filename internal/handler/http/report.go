package http

import (
	"net/http"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	// Dashboard workbook download
	ExportDashboard(w http.ResponseWriter, r *http.Request)

	// Per-employee performance table
	GetEmployeePerformanceReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// ExportDashboard handles GET /analytics/export
func (h *reportHandlerImpl) ExportDashboard(w http.ResponseWriter, r *http.Request) {
	q, ok := parseQuery(w, r)
	if !ok {
		return
	}

	file, err := h.reportService.ExportDashboard(r.Context(), report.ExportRequest{Query: q})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Filename, file.ContentType, file.Body)
}

// GetEmployeePerformanceReport handles GET /analytics/employee-performance
func (h *reportHandlerImpl) GetEmployeePerformanceReport(w http.ResponseWriter, r *http.Request) {
	q, ok := parseQuery(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.GenerateEmployeePerformanceReport(r.Context(), report.ExportRequest{Query: q})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: len(result.Employees)})
}
