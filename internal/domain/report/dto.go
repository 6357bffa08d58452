package report

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/dashboard"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ========================================
// DASHBOARD WORKBOOK
// ========================================

type ExportRequest struct {
	Query dashboard.Query
}

// File is a rendered report ready to be streamed.
type File struct {
	Filename    string
	ContentType string
	Body        []byte
}

func Filename(prefix string, at time.Time) string {
	return fmt.Sprintf("%s-%s.xlsx", prefix, at.Format("20060102-150405"))
}

// ========================================
// EMPLOYEE PERFORMANCE REPORT
// ========================================

type EmployeePerformanceRow struct {
	EmployeeID           int64  `json:"employee_id"`
	FullName             string `json:"full_name"`
	DepartmentName       string `json:"department_name"`
	JobTitle             string `json:"job_title"`
	TotalTasks           int    `json:"total_tasks"`
	CompletedTasks       int    `json:"completed_tasks"`
	TaskCompletionRate   int    `json:"task_completion_rate"`
	TotalTickets         int    `json:"total_tickets"`
	ResolvedTickets      int    `json:"resolved_tickets"`
	TicketResolutionRate int    `json:"ticket_resolution_rate"`
}

type EmployeePerformanceReport struct {
	GeneratedAt string                   `json:"generated_at"`
	Employees   []EmployeePerformanceRow `json:"employees"`
}
