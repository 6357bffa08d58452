package dashboard

import (
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/aggregate"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/filter"
)

const (
	DefaultTrendMonths = 6
	DefaultTopLimit    = 5
	MaxTopLimit        = 100
)

// Query carries the dashboard filters shared by every analytics endpoint.
type Query struct {
	Selection filter.Selection
	Months    int
	Weighting aggregate.Weighting
	Limit     int
}

// Dimension names a distribution chart.
type Dimension string

const (
	DimensionProjectStatus Dimension = "project-status"
	DimensionTaskStatus    Dimension = "task-status"
	DimensionTicketStatus  Dimension = "ticket-status"
	DimensionDepartment    Dimension = "department"
	DimensionGender        Dimension = "gender"
	DimensionAge           Dimension = "age"
	DimensionJobTitle      Dimension = "job-title"
)

var Dimensions = []Dimension{
	DimensionProjectStatus,
	DimensionTaskStatus,
	DimensionTicketStatus,
	DimensionDepartment,
	DimensionGender,
	DimensionAge,
	DimensionJobTitle,
}

func ParseDimension(s string) (Dimension, bool) {
	for _, d := range Dimensions {
		if string(d) == s {
			return d, true
		}
	}
	return "", false
}

// ========== COMBINED DASHBOARD ==========

// DashboardResponse is the combined response for the main dashboard endpoint
type DashboardResponse struct {
	Snapshot      SnapshotInfo          `json:"snapshot"`
	Overview      OverviewResponse      `json:"overview"`
	ProjectStatus DistributionResponse  `json:"project_status"`
	Departments   DistributionResponse  `json:"departments"`
	Gender        DistributionResponse  `json:"gender"`
	Age           DistributionResponse  `json:"age"`
	Trend         TrendResponse         `json:"trend"`
	Radar         RadarResponse         `json:"radar"`
	TopPerformers TopPerformersResponse `json:"top_performers"`
}

type SnapshotInfo struct {
	ID        string                `json:"id"`
	FetchedAt string                `json:"fetched_at"`
	Counts    map[Collection]int    `json:"counts"`
	Failures  map[Collection]string `json:"failures,omitempty"`
}

// ========== KPI OVERVIEW ==========

type OverviewResponse struct {
	TotalEmployees        int `json:"total_employees"`
	ActiveEmployees       int `json:"active_employees"`
	TotalDepartments      int `json:"total_departments"`
	TotalClients          int `json:"total_clients"`
	TotalProjects         int `json:"total_projects"`
	ActiveProjects        int `json:"active_projects"` // status = In Progress
	CompletedProjects     int `json:"completed_projects"`
	OverdueProjects       int `json:"overdue_projects"`
	TotalTasks            int `json:"total_tasks"`
	CompletedTasks        int `json:"completed_tasks"`
	OverdueTasks          int `json:"overdue_tasks"`
	AverageCompletionRate int `json:"average_completion_rate"`
	OpenTickets           int `json:"open_tickets"` // neither resolved nor closed
	ResolvedTickets       int `json:"resolved_tickets"`
	TicketResolutionRate  int `json:"ticket_resolution_rate"`
}

// ========== PER-EMPLOYEE RATES ==========

type EmployeeRatesResponse struct {
	EmployeeID           int64  `json:"employee_id"`
	FullName             string `json:"full_name"`
	TotalTasks           int    `json:"total_tasks"`
	CompletedTasks       int    `json:"completed_tasks"`
	TaskCompletionRate   int    `json:"task_completion_rate"`
	TotalTickets         int    `json:"total_tickets"`
	ResolvedTickets      int    `json:"resolved_tickets"`
	TicketResolutionRate int    `json:"ticket_resolution_rate"`
}

// ========== DISTRIBUTIONS ==========

type DistributionItem struct {
	aggregate.Bucket
	ProjectCount *int `json:"project_count,omitempty"` // department dimension only
}

type DistributionResponse struct {
	Dimension Dimension          `json:"dimension"`
	Total     int                `json:"total"`
	Items     []DistributionItem `json:"items"`
}

// ========== MONTHLY TREND ==========

type TrendPoint struct {
	Month           string `json:"month"` // Format: "YYYY-MM"
	Label           string `json:"label"` // Format: "Jan"
	Tasks           int    `json:"tasks"`
	CompletedTasks  int    `json:"completed_tasks"`
	Tickets         int    `json:"tickets"`
	ResolvedTickets int    `json:"resolved_tickets"`
	Performance     int    `json:"performance"`
	Satisfaction    int    `json:"satisfaction"`
	Productivity    int    `json:"productivity"`
}

type TrendResponse struct {
	Months int          `json:"months"`
	Points []TrendPoint `json:"points"`
}

// ========== RADAR ==========

const (
	MetricTaskCompletion    = "Task Completion"
	MetricTicketResolution  = "Ticket Resolution"
	MetricProjectSuccess    = "Project Success"
	MetricHighPriorityTasks = "High Priority Tasks"
	MetricTeamCollaboration = "Team Collaboration"
)

type RadarMetric struct {
	Metric   string `json:"metric"`
	Value    int    `json:"value"`
	FullMark int    `json:"full_mark"`
}

// RadarResponse has no metrics when no employee matches the filter.
type RadarResponse struct {
	Weighting aggregate.Weighting `json:"weighting"`
	Employees int                 `json:"employees"`
	Metrics   []RadarMetric       `json:"metrics"`
}

// ========== TOP PERFORMERS ==========

type TopPerformer struct {
	Rank               int     `json:"rank"`
	EmployeeID         int64   `json:"employee_id"`
	FullName           string  `json:"full_name"`
	JobTitle           string  `json:"job_title"`
	DepartmentName     *string `json:"department_name,omitempty"`
	TotalTasks         int     `json:"total_tasks"`
	CompletedTasks     int     `json:"completed_tasks"`
	TaskCompletionRate int     `json:"task_completion_rate"`
}

type TopPerformersResponse struct {
	Limit     int            `json:"limit"`
	Employees []TopPerformer `json:"employees"`
}
