package report

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const (
	SheetOverview      = "Overview"
	SheetDistributions = "Distributions"
	SheetTrend         = "Trend"
	SheetRadar         = "Radar"
	SheetTopPerformers = "Top Performers"
	SheetEmployees     = "Employees"
)

type workbook struct {
	generatedAt  time.Time
	dashboard    *dashboard.DashboardResponse
	taskStatus   *dashboard.DistributionResponse
	ticketStatus *dashboard.DistributionResponse
	employees    []report.EmployeePerformanceRow
}

// sheetWriter appends rows to one sheet and remembers the first write error.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
	err   error
}

func (w *sheetWriter) write(values ...any) {
	if w.err != nil {
		return
	}
	w.row++
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(w.sheet, cell, &values)
}

func (w *sheetWriter) header(style int, values ...any) {
	w.write(values...)
	if w.err != nil {
		return
	}
	from, _ := excelize.CoordinatesToCellName(1, w.row)
	to, _ := excelize.CoordinatesToCellName(len(values), w.row)
	w.err = w.f.SetCellStyle(w.sheet, from, to, style)
}

func (w *sheetWriter) blank() {
	w.row++
}

func renderWorkbook(wb workbook) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetOverview); err != nil {
		return nil, err
	}
	for _, name := range []string{SheetDistributions, SheetTrend, SheetRadar, SheetTopPerformers, SheetEmployees} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	d := wb.dashboard
	writers := []*sheetWriter{
		writeOverview(f, headerStyle, wb.generatedAt, d),
		writeDistributions(f, headerStyle, []dashboard.DistributionResponse{
			d.ProjectStatus, *wb.taskStatus, *wb.ticketStatus, d.Departments, d.Gender, d.Age,
		}),
		writeTrend(f, headerStyle, d.Trend),
		writeRadar(f, headerStyle, d.Radar),
		writeTopPerformers(f, headerStyle, d.TopPerformers),
		writeEmployees(f, headerStyle, wb.employees),
	}
	for _, w := range writers {
		if w.err != nil {
			return nil, fmt.Errorf("write sheet %s: %w", w.sheet, w.err)
		}
		if err := f.SetPanes(w.sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
			return nil, err
		}
		if err := f.SetColWidth(w.sheet, "A", "A", 28); err != nil {
			return nil, err
		}
		if err := f.SetColWidth(w.sheet, "B", "J", 16); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeOverview(f *excelize.File, style int, at time.Time, d *dashboard.DashboardResponse) *sheetWriter {
	o := d.Overview
	w := &sheetWriter{f: f, sheet: SheetOverview}
	w.header(style, "Metric", "Value")
	w.write("Generated at", at.UTC().Format(time.RFC3339))
	w.write("Snapshot", d.Snapshot.ID)
	w.write("Snapshot fetched at", d.Snapshot.FetchedAt)
	w.write("Total employees", o.TotalEmployees)
	w.write("Active employees", o.ActiveEmployees)
	w.write("Departments", o.TotalDepartments)
	w.write("Clients", o.TotalClients)
	w.write("Projects", o.TotalProjects)
	w.write("Active projects", o.ActiveProjects)
	w.write("Completed projects", o.CompletedProjects)
	w.write("Overdue projects", o.OverdueProjects)
	w.write("Tasks", o.TotalTasks)
	w.write("Completed tasks", o.CompletedTasks)
	w.write("Overdue tasks", o.OverdueTasks)
	w.write("Average completion rate (%)", o.AverageCompletionRate)
	w.write("Open tickets", o.OpenTickets)
	w.write("Resolved tickets", o.ResolvedTickets)
	w.write("Ticket resolution rate (%)", o.TicketResolutionRate)
	for collection, reason := range d.Snapshot.Failures {
		w.write("Failed to load "+string(collection), reason)
	}
	return w
}

func writeDistributions(f *excelize.File, style int, dists []dashboard.DistributionResponse) *sheetWriter {
	w := &sheetWriter{f: f, sheet: SheetDistributions}
	w.header(style, "Dimension", "Category", "Count", "Percent", "Projects")
	for i, dist := range dists {
		if i > 0 {
			w.blank()
		}
		for _, item := range dist.Items {
			var projects any
			if item.ProjectCount != nil {
				projects = *item.ProjectCount
			}
			w.write(string(dist.Dimension), item.Category, item.Count, item.Percent, projects)
		}
		w.write(string(dist.Dimension), "Total", dist.Total)
	}
	return w
}

func writeTrend(f *excelize.File, style int, trend dashboard.TrendResponse) *sheetWriter {
	w := &sheetWriter{f: f, sheet: SheetTrend}
	w.header(style, "Month", "Label", "Tasks", "Completed tasks", "Tickets", "Resolved tickets",
		"Performance", "Satisfaction", "Productivity")
	for _, p := range trend.Points {
		w.write(p.Month, p.Label, p.Tasks, p.CompletedTasks, p.Tickets, p.ResolvedTickets,
			p.Performance, p.Satisfaction, p.Productivity)
	}
	return w
}

func writeRadar(f *excelize.File, style int, radar dashboard.RadarResponse) *sheetWriter {
	w := &sheetWriter{f: f, sheet: SheetRadar}
	w.header(style, "Metric", "Value", "Full mark")
	for _, m := range radar.Metrics {
		w.write(m.Metric, m.Value, m.FullMark)
	}
	w.blank()
	w.write("Weighting", string(radar.Weighting))
	w.write("Employees", radar.Employees)
	return w
}

func writeTopPerformers(f *excelize.File, style int, top dashboard.TopPerformersResponse) *sheetWriter {
	w := &sheetWriter{f: f, sheet: SheetTopPerformers}
	w.header(style, "Rank", "Employee", "Job title", "Department", "Tasks", "Completed", "Completion (%)")
	for _, p := range top.Employees {
		department := ""
		if p.DepartmentName != nil {
			department = *p.DepartmentName
		}
		w.write(p.Rank, p.FullName, p.JobTitle, department, p.TotalTasks, p.CompletedTasks, p.TaskCompletionRate)
	}
	return w
}

func writeEmployees(f *excelize.File, style int, rows []report.EmployeePerformanceRow) *sheetWriter {
	w := &sheetWriter{f: f, sheet: SheetEmployees}
	w.header(style, "ID", "Employee", "Department", "Job title", "Tasks", "Completed tasks",
		"Completion (%)", "Tickets", "Resolved tickets", "Resolution (%)")
	for _, r := range rows {
		w.write(r.EmployeeID, r.FullName, r.DepartmentName, r.JobTitle, r.TotalTasks, r.CompletedTasks,
			r.TaskCompletionRate, r.TotalTickets, r.ResolvedTickets, r.TicketResolutionRate)
	}
	return w
}
