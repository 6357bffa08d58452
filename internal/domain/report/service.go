package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	// ExportDashboard renders the dashboard for the request's filters into an xlsx workbook
	ExportDashboard(ctx context.Context, req ExportRequest) (File, error)

	// GenerateEmployeePerformanceReport lists per-employee rates for the filtered employees
	GenerateEmployeePerformanceReport(ctx context.Context, req ExportRequest) (EmployeePerformanceReport, error)
}
