package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/ticket"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/aggregate"
)

type DashboardServiceImpl struct {
	store  dashboard.SnapshotStore
	now    func() time.Time
	logger *slog.Logger
}

func NewDashboardService(store dashboard.SnapshotStore, now func() time.Time, logger *slog.Logger) dashboard.DashboardService {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardServiceImpl{
		store:  store,
		now:    now,
		logger: logger.With("component", "dashboard"),
	}
}

// normalizeQuery applies defaults and rejects values the charts cannot render.
func normalizeQuery(q dashboard.Query) (dashboard.Query, error) {
	switch q.Months {
	case 0:
		q.Months = dashboard.DefaultTrendMonths
	case 6, 12:
	default:
		return q, dashboard.ErrInvalidMonths
	}

	w, ok := aggregate.ParseWeighting(string(q.Weighting))
	if !ok {
		return q, dashboard.ErrInvalidWeighting
	}
	q.Weighting = w

	switch {
	case q.Limit == 0:
		q.Limit = dashboard.DefaultTopLimit
	case q.Limit < 0 || q.Limit > dashboard.MaxTopLimit:
		return q, dashboard.ErrInvalidLimit
	}
	return q, nil
}

func (s *DashboardServiceImpl) load(ctx context.Context, q dashboard.Query) (*view, dashboard.Query, error) {
	q, err := normalizeQuery(q)
	if err != nil {
		return nil, q, err
	}
	snap, err := s.store.Current(ctx)
	if err != nil {
		return nil, q, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return newView(snap, q.Selection), q, nil
}

// GetDashboard returns every chart for one selection, computed from a single snapshot so
// the sections agree with each other.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, q dashboard.Query) (*dashboard.DashboardResponse, error) {
	v, q, err := s.load(ctx, q)
	if err != nil {
		return nil, err
	}
	dash := v.dashboard(s.now(), q)
	return &dash, nil
}

// Sections is the dashboard plus the task and ticket status breakdowns, all computed from
// the same snapshot.
type Sections struct {
	Dashboard    dashboard.DashboardResponse
	TaskStatus   dashboard.DistributionResponse
	TicketStatus dashboard.DistributionResponse
}

// BuildSections computes every section for q from snap without touching the store.
func BuildSections(snap *dashboard.Snapshot, q dashboard.Query, now time.Time) (*Sections, error) {
	q, err := normalizeQuery(q)
	if err != nil {
		return nil, err
	}
	v := newView(snap, q.Selection)
	return &Sections{
		Dashboard:    v.dashboard(now, q),
		TaskStatus:   v.distribution(dashboard.DimensionTaskStatus),
		TicketStatus: v.distribution(dashboard.DimensionTicketStatus),
	}, nil
}

func (s *DashboardServiceImpl) GetOverview(ctx context.Context, q dashboard.Query) (*dashboard.OverviewResponse, error) {
	v, q, err := s.load(ctx, q)
	if err != nil {
		return nil, err
	}
	overview := v.overview(s.now(), q.Weighting)
	return &overview, nil
}

func (s *DashboardServiceImpl) GetEmployeeRates(ctx context.Context, employeeID int64) (*dashboard.EmployeeRatesResponse, error) {
	snap, err := s.store.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var emp *employee.Employee
	for i := range snap.Employees {
		if snap.Employees[i].ID == employeeID {
			emp = &snap.Employees[i]
			break
		}
	}
	if emp == nil {
		return nil, dashboard.ErrEmployeeNotFound
	}

	tasks := CompletionRate(employeeID, snap.Tasks)
	tickets := ResolutionRate(employeeID, snap.Tickets)
	return &dashboard.EmployeeRatesResponse{
		EmployeeID:           employeeID,
		FullName:             emp.FullName(),
		TotalTasks:           tasks.Total,
		CompletedTasks:       tasks.Matched,
		TaskCompletionRate:   tasks.Percent(),
		TotalTickets:         tickets.Total,
		ResolvedTickets:      tickets.Matched,
		TicketResolutionRate: tickets.Percent(),
	}, nil
}

func (s *DashboardServiceImpl) GetDistribution(ctx context.Context, dim dashboard.Dimension, q dashboard.Query) (*dashboard.DistributionResponse, error) {
	if _, ok := dashboard.ParseDimension(string(dim)); !ok {
		return nil, dashboard.ErrInvalidDimension
	}
	v, _, err := s.load(ctx, q)
	if err != nil {
		return nil, err
	}
	dist := v.distribution(dim)
	return &dist, nil
}

func (s *DashboardServiceImpl) GetTrend(ctx context.Context, q dashboard.Query) (*dashboard.TrendResponse, error) {
	v, q, err := s.load(ctx, q)
	if err != nil {
		return nil, err
	}
	trend := v.trend(s.now(), q.Months)
	return &trend, nil
}

func (s *DashboardServiceImpl) GetRadar(ctx context.Context, q dashboard.Query) (*dashboard.RadarResponse, error) {
	v, q, err := s.load(ctx, q)
	if err != nil {
		return nil, err
	}
	radar := v.radar(q.Weighting)
	return &radar, nil
}

func (s *DashboardServiceImpl) GetTopPerformers(ctx context.Context, q dashboard.Query) (*dashboard.TopPerformersResponse, error) {
	v, q, err := s.load(ctx, q)
	if err != nil {
		return nil, err
	}
	top := v.topPerformers(q.Limit)
	return &top, nil
}

func (s *DashboardServiceImpl) Refresh(ctx context.Context) (*dashboard.SnapshotInfo, error) {
	snap, err := s.store.Refresh(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh snapshot: %w", err)
	}
	info := snap.Info()
	if len(info.Failures) > 0 {
		s.logger.Warn("snapshot refreshed with failures", "id", info.ID, "failures", info.Failures)
	}
	return &info, nil
}

// CompletionRate is the share of the employee's tasks that are completed. An employee
// without tasks has a 0/0 ratio, which reads as 0%.
func CompletionRate(employeeID int64, tasks []task.Task) aggregate.Ratio {
	return aggregate.Rate(
		aggregate.Where(tasks, func(t task.Task) bool { return t.EmployeeID == employeeID }),
		task.Task.IsCompleted,
	)
}

// ResolutionRate is the share of the employee's tickets that are resolved or closed.
func ResolutionRate(employeeID int64, tickets []ticket.Ticket) aggregate.Ratio {
	return aggregate.Rate(
		aggregate.Where(tickets, func(t ticket.Ticket) bool {
			id, ok := t.EmployeeKey()
			return ok && id == employeeID
		}),
		ticket.Ticket.IsResolved,
	)
}

func isProjectCompleted(p project.Project) bool { return p.Status == project.StatusCompleted }
