package dashboard

import (
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/ticket"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/aggregate"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/filter"
)

// Age buckets shown on the age chart, youngest first.
var ageBuckets = []string{"18-25", "26-30", "31-35", "36-40", "41+"}

func ageBucket(e employee.Employee) string {
	if e.Age == nil {
		return ""
	}
	switch age := *e.Age; {
	case age <= 25:
		return "18-25"
	case age <= 30:
		return "26-30"
	case age <= 35:
		return "31-35"
	case age <= 40:
		return "36-40"
	}
	return "41+"
}

// view is one snapshot narrowed by a selection. The employee population and each related
// collection are filtered once and shared by every chart.
type view struct {
	snap *dashboard.Snapshot

	employees   []employee.Employee
	departments []department.Department
	projects    []project.Project
	tasks       []task.Task
	tickets     []ticket.Ticket

	departmentOf   map[int64]*int64 // employee ID -> department ID
	departmentName map[int64]string
	projectByID    map[int64]project.Project
	employeeName   map[int64]string
}

func newView(snap *dashboard.Snapshot, sel filter.Selection) *view {
	v := &view{
		snap:           snap,
		departmentOf:   make(map[int64]*int64, len(snap.Employees)),
		departmentName: make(map[int64]string, len(snap.Departments)),
		projectByID:    make(map[int64]project.Project, len(snap.Projects)),
		employeeName:   make(map[int64]string, len(snap.Employees)),
	}
	for _, e := range snap.Employees {
		v.departmentOf[e.ID] = e.DepartmentID
		v.employeeName[e.ID] = e.FullName()
	}
	for _, d := range snap.Departments {
		v.departmentName[d.ID] = d.DepartmentName
	}
	for _, p := range snap.Projects {
		v.projectByID[p.ID] = p
	}

	deptOfEmployee := func(id int64) (int64, bool) {
		d := v.departmentOf[id]
		if d == nil {
			return 0, false
		}
		return *d, true
	}

	v.employees = filter.Apply(snap.Employees, sel, filter.Keys[employee.Employee]{
		Employee:   func(e employee.Employee) (int64, bool) { return e.ID, true },
		Department: employee.Employee.DepartmentKey,
	})
	v.departments = filter.Apply(snap.Departments, sel, filter.Keys[department.Department]{
		Department: func(d department.Department) (int64, bool) { return d.ID, true },
	})
	v.tasks = filter.Apply(snap.Tasks, sel, filter.Keys[task.Task]{
		Employee:   func(t task.Task) (int64, bool) { return t.EmployeeID, true },
		Department: func(t task.Task) (int64, bool) { return deptOfEmployee(t.EmployeeID) },
	})
	v.tickets = filter.Apply(snap.Tickets, sel, filter.Keys[ticket.Ticket]{
		Employee: ticket.Ticket.EmployeeKey,
		Department: func(t ticket.Ticket) (int64, bool) {
			id, ok := t.EmployeeKey()
			if !ok {
				return 0, false
			}
			return deptOfEmployee(id)
		},
	})
	v.projects = filter.Apply(snap.Projects, sel, filter.Keys[project.Project]{
		Employee:   func(p project.Project) (int64, bool) { return p.ChefID, true },
		Department: func(p project.Project) (int64, bool) { return p.DepartmentID, true },
		Status:     func(p project.Project) string { return string(p.Status) },
	})
	return v
}

func (v *view) departmentLabel(id *int64) string {
	if id == nil {
		return ""
	}
	return v.departmentName[*id]
}

func (v *view) dashboard(now time.Time, q dashboard.Query) dashboard.DashboardResponse {
	return dashboard.DashboardResponse{
		Snapshot:      v.snap.Info(),
		Overview:      v.overview(now, q.Weighting),
		ProjectStatus: v.distribution(dashboard.DimensionProjectStatus),
		Departments:   v.distribution(dashboard.DimensionDepartment),
		Gender:        v.distribution(dashboard.DimensionGender),
		Age:           v.distribution(dashboard.DimensionAge),
		Trend:         v.trend(now, q.Months),
		Radar:         v.radar(q.Weighting),
		TopPerformers: v.topPerformers(q.Limit),
	}
}

func (v *view) overview(now time.Time, w aggregate.Weighting) dashboard.OverviewResponse {
	completion := make([]aggregate.Ratio, len(v.employees))
	for i, e := range v.employees {
		completion[i] = CompletionRate(e.ID, v.tasks)
	}
	tickets := aggregate.Rate(v.tickets, ticket.Ticket.IsResolved)

	return dashboard.OverviewResponse{
		TotalEmployees:        len(v.employees),
		ActiveEmployees:       len(aggregate.Where(v.employees, func(e employee.Employee) bool { return e.Status == employee.StatusActive })),
		TotalDepartments:      len(v.departments),
		TotalClients:          len(v.snap.Clients),
		TotalProjects:         len(v.projects),
		ActiveProjects:        len(aggregate.Where(v.projects, func(p project.Project) bool { return p.Status == project.StatusInProgress })),
		CompletedProjects:     len(aggregate.Where(v.projects, isProjectCompleted)),
		OverdueProjects:       len(aggregate.Where(v.projects, func(p project.Project) bool { return p.IsOverdue(now) })),
		TotalTasks:            len(v.tasks),
		CompletedTasks:        len(aggregate.Where(v.tasks, task.Task.IsCompleted)),
		OverdueTasks:          len(aggregate.Where(v.tasks, func(t task.Task) bool { return t.IsOverdue(now) })),
		AverageCompletionRate: aggregate.Average(completion, w),
		OpenTickets:           tickets.Total - tickets.Matched,
		ResolvedTickets:       tickets.Matched,
		TicketResolutionRate:  tickets.Percent(),
	}
}

func toItems(buckets []aggregate.Bucket) []dashboard.DistributionItem {
	items := make([]dashboard.DistributionItem, len(buckets))
	for i, b := range buckets {
		items[i] = dashboard.DistributionItem{Bucket: b}
	}
	return items
}

func (v *view) distribution(dim dashboard.Dimension) dashboard.DistributionResponse {
	resp := dashboard.DistributionResponse{Dimension: dim}
	switch dim {
	case dashboard.DimensionProjectStatus:
		resp.Total = len(v.projects)
		resp.Items = toItems(aggregate.Distribution(v.projects, func(p project.Project) string { return string(p.Status) }))
	case dashboard.DimensionTaskStatus:
		resp.Total = len(v.tasks)
		resp.Items = toItems(aggregate.Distribution(v.tasks, func(t task.Task) string { return string(t.Status) }))
	case dashboard.DimensionTicketStatus:
		resp.Total = len(v.tickets)
		resp.Items = toItems(aggregate.Distribution(v.tickets, func(t ticket.Ticket) string { return string(t.Status) }))
	case dashboard.DimensionDepartment:
		resp.Total = len(v.employees)
		resp.Items = toItems(aggregate.Distribution(v.employees, func(e employee.Employee) string {
			return v.departmentLabel(e.DepartmentID)
		}))
		_, projectCounts := aggregate.Tally(v.projects, func(p project.Project) string {
			return v.departmentLabel(&p.DepartmentID)
		})
		for i := range resp.Items {
			n := projectCounts[resp.Items[i].Category]
			resp.Items[i].ProjectCount = &n
		}
	case dashboard.DimensionGender:
		resp.Total = len(v.employees)
		resp.Items = toItems(aggregate.Distribution(v.employees, func(e employee.Employee) string {
			return employee.SexeLabel(e.Sexe)
		}))
	case dashboard.DimensionAge:
		resp.Total = len(v.employees)
		resp.Items = toItems(aggregate.Distribution(v.employees, ageBucket, ageBuckets...))
	case dashboard.DimensionJobTitle:
		resp.Total = len(v.employees)
		resp.Items = toItems(aggregate.Distribution(v.employees, func(e employee.Employee) string {
			return strings.TrimSpace(e.JobTitle)
		}))
	}
	if resp.Items == nil {
		resp.Items = []dashboard.DistributionItem{}
	}
	return resp
}

// trend buckets tasks by assigned date and tickets by creation date.
func (v *view) trend(anchor time.Time, months int) dashboard.TrendResponse {
	window := aggregate.LastMonths(anchor, months)
	taskBuckets := aggregate.BucketByMonth(v.tasks, func(t task.Task) (time.Time, bool) {
		return t.AssignedDate.Time, !t.AssignedDate.IsZero()
	}, window)
	ticketBuckets := aggregate.BucketByMonth(v.tickets, func(t ticket.Ticket) (time.Time, bool) {
		return t.CreatedAt.Time, !t.CreatedAt.IsZero()
	}, window)

	points := make([]dashboard.TrendPoint, len(window))
	for i, m := range window {
		tasks := aggregate.Rate(taskBuckets[i], task.Task.IsCompleted)
		tickets := aggregate.Rate(ticketBuckets[i], ticket.Ticket.IsResolved)
		points[i] = dashboard.TrendPoint{
			Month:           m.Key(),
			Label:           m.Label(),
			Tasks:           tasks.Total,
			CompletedTasks:  tasks.Matched,
			Tickets:         tickets.Total,
			ResolvedTickets: tickets.Matched,
			Performance:     tasks.Percent(),
			Satisfaction:    tickets.Percent(),
			Productivity:    productivity(tasks, tickets),
		}
	}
	return dashboard.TrendResponse{Months: months, Points: points}
}

// productivity is the mean of the unrounded performance and satisfaction percentages.
func productivity(tasks, tickets aggregate.Ratio) int {
	var perf, sat float64
	if tasks.Total > 0 {
		perf = 100 * float64(tasks.Matched) / float64(tasks.Total)
	}
	if tickets.Total > 0 {
		sat = 100 * float64(tickets.Matched) / float64(tickets.Total)
	}
	return int(math.Round((perf + sat) / 2))
}

func (v *view) radar(w aggregate.Weighting) dashboard.RadarResponse {
	resp := dashboard.RadarResponse{
		Weighting: w,
		Employees: len(v.employees),
		Metrics:   []dashboard.RadarMetric{},
	}
	if len(v.employees) == 0 {
		return resp
	}

	tasksByEmployee := groupBy(v.snap.Tasks, func(t task.Task) (int64, bool) { return t.EmployeeID, true })
	ticketsByEmployee := groupBy(v.snap.Tickets, ticket.Ticket.EmployeeKey)
	projectsByChef := groupBy(v.projects, func(p project.Project) (int64, bool) { return p.ChefID, true })

	n := len(v.employees)
	completion := make([]aggregate.Ratio, n)
	resolution := make([]aggregate.Ratio, n)
	success := make([]aggregate.Ratio, n)
	highPriority := make([]aggregate.Ratio, n)
	collaboration := make([]aggregate.Ratio, n)

	for i, e := range v.employees {
		tasks := tasksByEmployee[e.ID]
		completion[i] = aggregate.Rate(tasks, task.Task.IsCompleted)
		resolution[i] = aggregate.Rate(ticketsByEmployee[e.ID], ticket.Ticket.IsResolved)
		success[i] = aggregate.Rate(projectsByChef[e.ID], isProjectCompleted)
		highPriority[i] = aggregate.Rate(
			aggregate.Where(tasks, func(t task.Task) bool { return t.Priority == task.PriorityHigh }),
			task.Task.IsCompleted,
		)
		collaboration[i] = v.collaboration(tasks)
	}

	resp.Metrics = []dashboard.RadarMetric{
		{Metric: dashboard.MetricTaskCompletion, Value: aggregate.Average(completion, w), FullMark: 100},
		{Metric: dashboard.MetricTicketResolution, Value: aggregate.Average(resolution, w), FullMark: 100},
		{Metric: dashboard.MetricProjectSuccess, Value: aggregate.Average(success, w), FullMark: 100},
		{Metric: dashboard.MetricHighPriorityTasks, Value: aggregate.Average(highPriority, w), FullMark: 100},
		{Metric: dashboard.MetricTeamCollaboration, Value: aggregate.Average(collaboration, w), FullMark: 100},
	}
	return resp
}

// collaboration counts tasks done on projects led by someone else. Tasks whose project is
// unknown are left out of the denominator.
func (v *view) collaboration(tasks []task.Task) aggregate.Ratio {
	var r aggregate.Ratio
	for _, t := range tasks {
		if t.ProjectID == nil {
			continue
		}
		p, ok := v.projectByID[*t.ProjectID]
		if !ok {
			continue
		}
		r.Total++
		if p.ChefID != t.EmployeeID {
			r.Matched++
		}
	}
	return r
}

func (v *view) topPerformers(limit int) dashboard.TopPerformersResponse {
	type scored struct {
		employee employee.Employee
		rate     aggregate.Ratio
	}
	tasksByEmployee := groupBy(v.snap.Tasks, func(t task.Task) (int64, bool) { return t.EmployeeID, true })
	candidates := make([]scored, len(v.employees))
	for i, e := range v.employees {
		candidates[i] = scored{employee: e, rate: aggregate.Rate(tasksByEmployee[e.ID], task.Task.IsCompleted)}
	}

	ranked := aggregate.TopN(candidates, func(s scored) float64 { return float64(s.rate.Percent()) }, limit)
	resp := dashboard.TopPerformersResponse{Limit: limit, Employees: make([]dashboard.TopPerformer, len(ranked))}
	for i, s := range ranked {
		tp := dashboard.TopPerformer{
			Rank:               i + 1,
			EmployeeID:         s.employee.ID,
			FullName:           s.employee.FullName(),
			JobTitle:           s.employee.JobTitle,
			TotalTasks:         s.rate.Total,
			CompletedTasks:     s.rate.Matched,
			TaskCompletionRate: s.rate.Percent(),
		}
		if name := v.departmentLabel(s.employee.DepartmentID); name != "" {
			tp.DepartmentName = &name
		}
		resp.Employees[i] = tp
	}
	return resp
}

func groupBy[T any](items []T, key func(T) (int64, bool)) map[int64][]T {
	out := make(map[int64][]T)
	for _, item := range items {
		if k, ok := key(item); ok {
			out[k] = append(out[k], item)
		}
	}
	return out
}
