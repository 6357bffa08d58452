package dashboard

import "context"

// DashboardService computes every chart and KPI from the current snapshot.
type DashboardService interface {
	// GetDashboard returns the combined dashboard for one filter selection
	GetDashboard(ctx context.Context, q Query) (*DashboardResponse, error)

	GetOverview(ctx context.Context, q Query) (*OverviewResponse, error)

	// GetEmployeeRates returns the task completion and ticket resolution rates of one employee
	GetEmployeeRates(ctx context.Context, employeeID int64) (*EmployeeRatesResponse, error)

	GetDistribution(ctx context.Context, dim Dimension, q Query) (*DistributionResponse, error)

	// GetTrend returns exactly q.Months points ending at the current month
	GetTrend(ctx context.Context, q Query) (*TrendResponse, error)

	GetRadar(ctx context.Context, q Query) (*RadarResponse, error)

	GetTopPerformers(ctx context.Context, q Query) (*TopPerformersResponse, error)

	// Refresh forces a new fetch batch
	Refresh(ctx context.Context) (*SnapshotInfo, error)
}
