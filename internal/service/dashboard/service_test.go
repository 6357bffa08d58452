package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/client"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/ticket"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/aggregate"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/datetime"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/filter"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

type fakeStore struct {
	snap        *dashboard.Snapshot
	err         error
	refreshed   int
	invalidated []dashboard.Collection
}

func (f *fakeStore) Current(ctx context.Context) (*dashboard.Snapshot, error) {
	return f.snap, f.err
}

func (f *fakeStore) Refresh(ctx context.Context) (*dashboard.Snapshot, error) {
	f.refreshed++
	return f.snap, f.err
}

func (f *fakeStore) Invalidate(collections ...dashboard.Collection) {
	f.invalidated = append(f.invalidated, collections...)
}

func id(v int64) *int64 { return &v }
func age(v int) *int    { return &v }

func date(y int, m time.Month, d int) datetime.Time {
	return datetime.New(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func datePtr(y int, m time.Month, d int) *datetime.Time {
	t := date(y, m, d)
	return &t
}

func fixture() *dashboard.Snapshot {
	return &dashboard.Snapshot{
		ID:         uuid.New(),
		Generation: 1,
		FetchedAt:  now,
		Departments: []department.Department{
			{ID: 10, DepartmentName: "Engineering"},
			{ID: 20, DepartmentName: "Sales"},
		},
		Employees: []employee.Employee{
			{ID: 1, FirstName: "Ada", LastName: "Lovelace", JobTitle: "Engineer", DepartmentID: id(10), Age: age(24), Sexe: employee.SexeFemale, Status: employee.StatusActive},
			{ID: 2, FirstName: "Alan", LastName: "Turing", JobTitle: " Analyst ", DepartmentID: id(20), Age: age(41), Sexe: employee.SexeMale, Status: employee.StatusOnLeave},
			{ID: 3, FirstName: "Grace", LastName: "Hopper", JobTitle: "Engineer", DepartmentID: id(10), Sexe: employee.SexeFemale, Status: employee.StatusActive},
			{ID: 4, FirstName: "Linus", LastName: "Torvalds", JobTitle: "Engineer", Age: age(30), Sexe: employee.SexeMale, Status: employee.StatusActive},
		},
		Clients: []client.Client{{ID: 1, ClientName: "Acme"}},
		Projects: []project.Project{
			{ID: 100, ProjectName: "Portal", ClientID: 1, DepartmentID: 10, ChefID: 1, Status: project.StatusCompleted},
			{ID: 101, ProjectName: "Mobile", ClientID: 1, DepartmentID: 10, ChefID: 3, Status: project.StatusInProgress, DueAt: datePtr(2025, time.June, 1)},
			{ID: 102, ProjectName: "CRM", ClientID: 1, DepartmentID: 20, ChefID: 2, Status: project.StatusCompleted},
		},
		Tasks: []task.Task{
			{ID: 1, EmployeeID: 1, ProjectID: id(101), Status: task.StatusCompleted, Priority: task.PriorityHigh, AssignedDate: date(2025, time.June, 2)},
			{ID: 2, EmployeeID: 1, ProjectID: id(100), Status: task.StatusCompleted, Priority: task.PriorityLow, AssignedDate: date(2025, time.May, 10)},
			{ID: 3, EmployeeID: 1, ProjectID: id(999), Status: task.StatusCompleted, Priority: task.PriorityLow, AssignedDate: date(2025, time.May, 11)},
			{ID: 4, EmployeeID: 1, Status: task.StatusInProgress, Priority: task.PriorityHigh, AssignedDate: date(2025, time.April, 1), DueDate: datePtr(2025, time.June, 1)},
			{ID: 5, EmployeeID: 3, ProjectID: id(101), Status: task.StatusCompleted, Priority: task.PriorityMedium, AssignedDate: date(2025, time.June, 3)},
			{ID: 6, EmployeeID: 3, ProjectID: id(100), Status: task.StatusBlocked, Priority: task.PriorityMedium, AssignedDate: date(2024, time.January, 1)},
			{ID: 7, EmployeeID: 4, Status: task.StatusCompleted, Priority: task.PriorityLow, AssignedDate: date(2025, time.March, 1)},
			{ID: 8, EmployeeID: 4, Status: task.StatusNotStarted, Priority: task.PriorityLow, AssignedDate: date(2025, time.March, 2)},
		},
		Tickets: []ticket.Ticket{
			{ID: 1, EmployeeID: id(1), Status: ticket.StatusResolved, CreatedAt: date(2025, time.June, 5)},
			{ID: 2, EmployeeID: id(1), Status: ticket.StatusOpen, CreatedAt: date(2025, time.June, 6)},
			{ID: 3, EmployeeID: id(2), Status: ticket.StatusClosed, CreatedAt: date(2025, time.May, 1)},
			{ID: 4, Status: ticket.StatusOpen, CreatedAt: date(2025, time.May, 2)},
		},
	}
}

func newTestService(snap *dashboard.Snapshot) (*fakeStore, dashboard.DashboardService) {
	store := &fakeStore{snap: snap}
	return store, NewDashboardService(store, func() time.Time { return now }, nil)
}

func metric(t *testing.T, radar *dashboard.RadarResponse, name string) int {
	t.Helper()
	for _, m := range radar.Metrics {
		if m.Metric == name {
			assert.Equal(t, 100, m.FullMark)
			return m.Value
		}
	}
	t.Fatalf("metric %q missing", name)
	return 0
}

func TestGetRadar_AverageCompletionOverTwoEmployees(t *testing.T) {
	_, svc := newTestService(fixture())
	q := dashboard.Query{Selection: filter.Selection{EmployeeIDs: []int64{1, 2}}}

	radar, err := svc.GetRadar(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 2, radar.Employees)
	assert.Equal(t, aggregate.WeightEqual, radar.Weighting)
	// round((75 + 0) / 2)
	assert.Equal(t, 38, metric(t, radar, dashboard.MetricTaskCompletion))

	q.Weighting = aggregate.WeightVolume
	radar, err = svc.GetRadar(context.Background(), q)
	require.NoError(t, err)
	// 3 of 4 pooled
	assert.Equal(t, 75, metric(t, radar, dashboard.MetricTaskCompletion))
}

func TestGetRadar_Metrics(t *testing.T) {
	_, svc := newTestService(fixture())

	radar, err := svc.GetRadar(context.Background(), dashboard.Query{})
	require.NoError(t, err)
	require.Len(t, radar.Metrics, 5)
	assert.Equal(t, dashboard.MetricTaskCompletion, radar.Metrics[0].Metric)
	assert.Equal(t, dashboard.MetricTeamCollaboration, radar.Metrics[4].Metric)

	// (75 + 0 + 50 + 50) / 4
	assert.Equal(t, 44, metric(t, radar, dashboard.MetricTaskCompletion))
	// Ada 1/2, Alan 1/1, nobody else has tickets
	assert.Equal(t, 38, metric(t, radar, dashboard.MetricTicketResolution))
	// Ada and Alan lead completed projects, Grace leads one in progress
	assert.Equal(t, 50, metric(t, radar, dashboard.MetricProjectSuccess))
	// Ada 1/2 high priority tasks done
	assert.Equal(t, 13, metric(t, radar, dashboard.MetricHighPriorityTasks))
	// Ada 1/2 and Grace 1/2; task 3 points at a missing project and task 4 has none
	assert.Equal(t, 25, metric(t, radar, dashboard.MetricTeamCollaboration))
}

func TestGetRadar_ProjectSuccessFollowsStatusSelection(t *testing.T) {
	_, svc := newTestService(fixture())
	q := dashboard.Query{Selection: filter.Selection{Statuses: []string{string(project.StatusInProgress)}}}

	radar, err := svc.GetRadar(context.Background(), q)
	require.NoError(t, err)
	// only Grace's project is in progress, and it is not completed
	assert.Equal(t, 0, metric(t, radar, dashboard.MetricProjectSuccess))

	overview, err := svc.GetOverview(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 1, overview.TotalProjects)
	assert.Equal(t, 0, overview.CompletedProjects)
}

func TestGetRadar_CollaborationSkipsUnresolvedProjects(t *testing.T) {
	snap := fixture()
	snap.Projects = nil
	_, svc := newTestService(snap)

	radar, err := svc.GetRadar(context.Background(), dashboard.Query{Weighting: aggregate.WeightVolume})
	require.NoError(t, err)
	assert.Equal(t, 0, metric(t, radar, dashboard.MetricTeamCollaboration))
	assert.Equal(t, 0, metric(t, radar, dashboard.MetricProjectSuccess))
}

func TestGetRadar_EmptyPopulation(t *testing.T) {
	_, svc := newTestService(fixture())

	radar, err := svc.GetRadar(context.Background(), dashboard.Query{
		Selection: filter.Selection{EmployeeIDs: []int64{99}},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, radar.Employees)
	assert.NotNil(t, radar.Metrics)
	assert.Empty(t, radar.Metrics)
}

func TestGetTrend_WindowLength(t *testing.T) {
	_, svc := newTestService(fixture())

	for _, months := range []int{6, 12} {
		trend, err := svc.GetTrend(context.Background(), dashboard.Query{Months: months})
		require.NoError(t, err)
		assert.Equal(t, months, trend.Months)
		require.Len(t, trend.Points, months)
		assert.Equal(t, "2025-06", trend.Points[months-1].Month)
		assert.Equal(t, aggregate.LastMonths(now, months)[0].Key(), trend.Points[0].Month)
	}

	trend, err := svc.GetTrend(context.Background(), dashboard.Query{})
	require.NoError(t, err)
	assert.Len(t, trend.Points, dashboard.DefaultTrendMonths)
}

func TestGetTrend_MonthlyMetrics(t *testing.T) {
	_, svc := newTestService(fixture())

	trend, err := svc.GetTrend(context.Background(), dashboard.Query{Months: 6})
	require.NoError(t, err)

	june := trend.Points[5]
	assert.Equal(t, "Jun", june.Label)
	assert.Equal(t, 2, june.Tasks)
	assert.Equal(t, 2, june.CompletedTasks)
	assert.Equal(t, 2, june.Tickets)
	assert.Equal(t, 1, june.ResolvedTickets)
	assert.Equal(t, 100, june.Performance)
	assert.Equal(t, 50, june.Satisfaction)
	assert.Equal(t, 75, june.Productivity)

	april := trend.Points[3]
	assert.Equal(t, 1, april.Tasks)
	assert.Equal(t, 0, april.Performance)
	assert.Equal(t, 0, april.Productivity)

	january := trend.Points[0]
	assert.Zero(t, january.Tasks)
	assert.Zero(t, january.Tickets)
	assert.Zero(t, january.Productivity)
}

func TestProductivity_UsesUnroundedRates(t *testing.T) {
	// 1/3 and 2/3 average to exactly 50
	assert.Equal(t, 50, productivity(aggregate.Ratio{Matched: 1, Total: 3}, aggregate.Ratio{Matched: 2, Total: 3}))
	assert.Equal(t, 0, productivity(aggregate.Ratio{}, aggregate.Ratio{}))
}

func TestGetDistribution_CountsSumToTotal(t *testing.T) {
	_, svc := newTestService(fixture())
	selections := []filter.Selection{
		{},
		{DepartmentIDs: []int64{10}},
		{EmployeeIDs: []int64{2, 4}},
		{Statuses: []string{string(project.StatusCompleted)}},
	}

	for _, dim := range dashboard.Dimensions {
		for _, sel := range selections {
			dist, err := svc.GetDistribution(context.Background(), dim, dashboard.Query{Selection: sel})
			require.NoError(t, err)

			sum := 0
			for _, item := range dist.Items {
				sum += item.Count
			}
			assert.Equal(t, dist.Total, sum, "dimension %s selection %+v", dim, sel)
		}
	}
}

func TestGetDistribution_ProjectStatus(t *testing.T) {
	snap := fixture()
	snap.Projects = []project.Project{{Status: "TERMINE"}, {Status: "EN_COURS"}, {Status: "TERMINE"}}
	_, svc := newTestService(snap)

	dist, err := svc.GetDistribution(context.Background(), dashboard.DimensionProjectStatus, dashboard.Query{})
	require.NoError(t, err)
	assert.Equal(t, 3, dist.Total)
	assert.Equal(t, []dashboard.DistributionItem{
		{Bucket: aggregate.Bucket{Category: "TERMINE", Count: 2, Percent: 67}},
		{Bucket: aggregate.Bucket{Category: "EN_COURS", Count: 1, Percent: 33}},
	}, dist.Items)
}

func TestGetDistribution_Departments(t *testing.T) {
	_, svc := newTestService(fixture())

	dist, err := svc.GetDistribution(context.Background(), dashboard.DimensionDepartment, dashboard.Query{})
	require.NoError(t, err)
	require.Len(t, dist.Items, 3)

	want := []struct {
		name     string
		count    int
		projects int
	}{
		{"Engineering", 2, 2},
		{"Sales", 1, 1},
		{aggregate.UnknownCategory, 1, 0},
	}
	for i, w := range want {
		item := dist.Items[i]
		assert.Equal(t, w.name, item.Category)
		assert.Equal(t, w.count, item.Count)
		require.NotNil(t, item.ProjectCount)
		assert.Equal(t, w.projects, *item.ProjectCount)
	}
}

func TestGetDistribution_AgeBuckets(t *testing.T) {
	_, svc := newTestService(fixture())

	dist, err := svc.GetDistribution(context.Background(), dashboard.DimensionAge, dashboard.Query{})
	require.NoError(t, err)

	var categories []string
	for _, item := range dist.Items {
		categories = append(categories, item.Category)
		assert.Nil(t, item.ProjectCount)
	}
	assert.Equal(t, []string{"18-25", "26-30", "41+", aggregate.UnknownCategory}, categories)
}

func TestAgeBucket_Boundaries(t *testing.T) {
	tests := []struct {
		age  int
		want string
	}{
		{18, "18-25"}, {25, "18-25"}, {26, "26-30"}, {30, "26-30"},
		{31, "31-35"}, {35, "31-35"}, {36, "36-40"}, {40, "36-40"}, {41, "41+"}, {70, "41+"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ageBucket(employee.Employee{Age: age(tt.age)}), "age %d", tt.age)
	}
	assert.Equal(t, "", ageBucket(employee.Employee{}))
}

func TestGetDistribution_GenderAndJobTitle(t *testing.T) {
	_, svc := newTestService(fixture())

	gender, err := svc.GetDistribution(context.Background(), dashboard.DimensionGender, dashboard.Query{})
	require.NoError(t, err)
	require.Len(t, gender.Items, 2)
	assert.Equal(t, "Female", gender.Items[0].Category)
	assert.Equal(t, 2, gender.Items[0].Count)
	assert.Equal(t, "Male", gender.Items[1].Category)

	titles, err := svc.GetDistribution(context.Background(), dashboard.DimensionJobTitle, dashboard.Query{})
	require.NoError(t, err)
	require.Len(t, titles.Items, 2)
	assert.Equal(t, "Engineer", titles.Items[0].Category)
	assert.Equal(t, 3, titles.Items[0].Count)
	assert.Equal(t, "Analyst", titles.Items[1].Category)
}

func TestGetDistribution_UnknownDimension(t *testing.T) {
	_, svc := newTestService(fixture())

	_, err := svc.GetDistribution(context.Background(), "salary", dashboard.Query{})
	assert.ErrorIs(t, err, dashboard.ErrInvalidDimension)
}

func TestGetOverview(t *testing.T) {
	_, svc := newTestService(fixture())

	overview, err := svc.GetOverview(context.Background(), dashboard.Query{})
	require.NoError(t, err)
	assert.Equal(t, dashboard.OverviewResponse{
		TotalEmployees:        4,
		ActiveEmployees:       3,
		TotalDepartments:      2,
		TotalClients:          1,
		TotalProjects:         3,
		ActiveProjects:        1,
		CompletedProjects:     2,
		OverdueProjects:       1,
		TotalTasks:            8,
		CompletedTasks:        5,
		OverdueTasks:          1,
		AverageCompletionRate: 44,
		OpenTickets:           2,
		ResolvedTickets:       2,
		TicketResolutionRate:  50,
	}, *overview)
}

func TestGetOverview_Filtered(t *testing.T) {
	_, svc := newTestService(fixture())

	overview, err := svc.GetOverview(context.Background(), dashboard.Query{
		Selection: filter.Selection{DepartmentIDs: []int64{20}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, overview.TotalEmployees)
	assert.Equal(t, 1, overview.TotalDepartments)
	assert.Equal(t, 1, overview.TotalClients)
	assert.Equal(t, 1, overview.TotalProjects)
	assert.Equal(t, 0, overview.TotalTasks)
	assert.Equal(t, 0, overview.AverageCompletionRate)
	assert.Equal(t, 1, overview.ResolvedTickets)

	overview, err = svc.GetOverview(context.Background(), dashboard.Query{
		Selection: filter.Selection{Statuses: []string{string(project.StatusCompleted)}},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, overview.TotalEmployees)
	assert.Equal(t, 2, overview.TotalProjects)
	assert.Equal(t, 0, overview.OverdueProjects)
}

func TestNewView_EmptySelectionIsIdentity(t *testing.T) {
	snap := fixture()
	v := newView(snap, filter.Selection{})

	assert.Equal(t, snap.Employees, v.employees)
	assert.Equal(t, snap.Projects, v.projects)
	assert.Equal(t, snap.Tasks, v.tasks)
	assert.Equal(t, snap.Tickets, v.tickets)

	narrowed := newView(snap, filter.Selection{EmployeeIDs: []int64{1}})
	assert.Len(t, narrowed.employees, 1)
	assert.Len(t, narrowed.tasks, 4)
	assert.Len(t, narrowed.tickets, 2)

	cleared := newView(snap, filter.Selection{})
	assert.Equal(t, snap.Employees, cleared.employees)
}

func TestGetTopPerformers(t *testing.T) {
	_, svc := newTestService(fixture())

	top, err := svc.GetTopPerformers(context.Background(), dashboard.Query{Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, top.Limit)
	require.Len(t, top.Employees, 3)

	var ids []int64
	for i, p := range top.Employees {
		assert.Equal(t, i+1, p.Rank)
		ids = append(ids, p.EmployeeID)
	}
	// Grace and Linus tie at 50 and keep their input order
	assert.Equal(t, []int64{1, 3, 4}, ids)
	assert.Equal(t, "Ada Lovelace", top.Employees[0].FullName)
	assert.Equal(t, 75, top.Employees[0].TaskCompletionRate)
	require.NotNil(t, top.Employees[0].DepartmentName)
	assert.Equal(t, "Engineering", *top.Employees[0].DepartmentName)
	assert.Nil(t, top.Employees[2].DepartmentName)
}

func TestGetEmployeeRates(t *testing.T) {
	_, svc := newTestService(fixture())

	rates, err := svc.GetEmployeeRates(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 4, rates.TotalTasks)
	assert.Equal(t, 75, rates.TaskCompletionRate)
	assert.Equal(t, 50, rates.TicketResolutionRate)

	rates, err = svc.GetEmployeeRates(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 0, rates.TotalTasks)
	assert.Equal(t, 0, rates.TaskCompletionRate)
	assert.Equal(t, 100, rates.TicketResolutionRate)

	_, err = svc.GetEmployeeRates(context.Background(), 99)
	assert.ErrorIs(t, err, dashboard.ErrEmployeeNotFound)
}

func TestQueryValidation(t *testing.T) {
	_, svc := newTestService(fixture())
	ctx := context.Background()

	_, err := svc.GetTrend(ctx, dashboard.Query{Months: 3})
	assert.ErrorIs(t, err, dashboard.ErrInvalidMonths)

	_, err = svc.GetRadar(ctx, dashboard.Query{Weighting: "median"})
	assert.ErrorIs(t, err, dashboard.ErrInvalidWeighting)

	_, err = svc.GetTopPerformers(ctx, dashboard.Query{Limit: dashboard.MaxTopLimit + 1})
	assert.ErrorIs(t, err, dashboard.ErrInvalidLimit)

	_, err = svc.GetTopPerformers(ctx, dashboard.Query{Limit: -1})
	assert.ErrorIs(t, err, dashboard.ErrInvalidLimit)
}

func TestGetDashboard(t *testing.T) {
	snap := fixture()
	_, svc := newTestService(snap)

	resp, err := svc.GetDashboard(context.Background(), dashboard.Query{})
	require.NoError(t, err)
	assert.Equal(t, snap.ID.String(), resp.Snapshot.ID)
	assert.Equal(t, 4, resp.Overview.TotalEmployees)
	assert.Equal(t, dashboard.DimensionProjectStatus, resp.ProjectStatus.Dimension)
	assert.Len(t, resp.Trend.Points, dashboard.DefaultTrendMonths)
	assert.Len(t, resp.Radar.Metrics, 5)
	assert.Len(t, resp.TopPerformers.Employees, 4)
}

func TestStoreErrorsPropagate(t *testing.T) {
	store, svc := newTestService(nil)
	store.err = errors.New("boom")

	_, err := svc.GetOverview(context.Background(), dashboard.Query{})
	assert.ErrorContains(t, err, "boom")

	_, err = svc.Refresh(context.Background())
	assert.ErrorContains(t, err, "boom")
	assert.Equal(t, 1, store.refreshed)
}

func TestRefresh(t *testing.T) {
	snap := fixture()
	snap.Failures = map[dashboard.Collection]string{dashboard.CollectionTickets: "timeout"}
	store, svc := newTestService(snap)

	info, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, store.refreshed)
	assert.Equal(t, "timeout", info.Failures[dashboard.CollectionTickets])
	assert.Equal(t, 4, info.Counts[dashboard.CollectionEmployees])
}
