package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/filter"
	dashboardservice "github.com/cmlabs-hris/opsboard-backend-go/internal/service/dashboard"
)

type ReportServiceImpl struct {
	store  dashboard.SnapshotStore
	now    func() time.Time
	logger *slog.Logger
}

func NewReportService(store dashboard.SnapshotStore, now func() time.Time, logger *slog.Logger) report.ReportService {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportServiceImpl{
		store:  store,
		now:    now,
		logger: logger.With("component", "report"),
	}
}

// GenerateEmployeePerformanceReport lists task and ticket rates for every employee the
// selection keeps, in snapshot order.
func (s *ReportServiceImpl) GenerateEmployeePerformanceReport(ctx context.Context, req report.ExportRequest) (report.EmployeePerformanceReport, error) {
	snap, err := s.store.Current(ctx)
	if err != nil {
		return report.EmployeePerformanceReport{}, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return s.performance(snap, req.Query.Selection, s.now())
}

func (s *ReportServiceImpl) performance(snap *dashboard.Snapshot, sel filter.Selection, at time.Time) (report.EmployeePerformanceReport, error) {
	employees := filter.Apply(snap.Employees, sel, filter.Keys[employee.Employee]{
		Employee:   func(e employee.Employee) (int64, bool) { return e.ID, true },
		Department: employee.Employee.DepartmentKey,
	})
	if len(employees) == 0 {
		return report.EmployeePerformanceReport{}, report.ErrNoDataFound
	}

	departments := make(map[int64]string, len(snap.Departments))
	for _, d := range snap.Departments {
		departments[d.ID] = d.DepartmentName
	}

	rows := make([]report.EmployeePerformanceRow, 0, len(employees))
	for _, e := range employees {
		tasks := dashboardservice.CompletionRate(e.ID, snap.Tasks)
		tickets := dashboardservice.ResolutionRate(e.ID, snap.Tickets)
		row := report.EmployeePerformanceRow{
			EmployeeID:           e.ID,
			FullName:             e.FullName(),
			JobTitle:             e.JobTitle,
			TotalTasks:           tasks.Total,
			CompletedTasks:       tasks.Matched,
			TaskCompletionRate:   tasks.Percent(),
			TotalTickets:         tickets.Total,
			ResolvedTickets:      tickets.Matched,
			TicketResolutionRate: tickets.Percent(),
		}
		if e.DepartmentID != nil {
			row.DepartmentName = departments[*e.DepartmentID]
		}
		rows = append(rows, row)
	}

	return report.EmployeePerformanceReport{
		GeneratedAt: at.UTC().Format(time.RFC3339),
		Employees:   rows,
	}, nil
}

// ExportDashboard renders every dashboard section for the selection into one workbook.
// All sheets come from a single snapshot.
func (s *ReportServiceImpl) ExportDashboard(ctx context.Context, req report.ExportRequest) (report.File, error) {
	snap, err := s.store.Current(ctx)
	if err != nil {
		return report.File{}, fmt.Errorf("failed to load snapshot: %w", err)
	}

	at := s.now()
	sections, err := dashboardservice.BuildSections(snap, req.Query, at)
	if err != nil {
		return report.File{}, err
	}

	perf, err := s.performance(snap, req.Query.Selection, at)
	if err != nil && !errors.Is(err, report.ErrNoDataFound) {
		return report.File{}, err
	}

	body, err := renderWorkbook(workbook{
		generatedAt:  at,
		dashboard:    &sections.Dashboard,
		taskStatus:   &sections.TaskStatus,
		ticketStatus: &sections.TicketStatus,
		employees:    perf.Employees,
	})
	if err != nil {
		s.logger.Error("failed to render dashboard workbook", "error", err)
		return report.File{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}

	s.logger.Info("dashboard exported", "snapshot_id", snap.ID, "bytes", len(body))
	return report.File{
		Filename:    report.Filename("dashboard", at),
		ContentType: report.ContentTypeXLSX,
		Body:        body,
	}, nil
}
