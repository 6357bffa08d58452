package postgresql

import (
	"context"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/client"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/ticket"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/database"
)

// dashboardSourceImpl reads whole collections straight from the tables.
type dashboardSourceImpl struct {
	employees   employee.EmployeeRepository
	departments department.DepartmentRepository
	clients     client.ClientRepository
	projects    project.ProjectRepository
	tasks       task.TaskRepository
	tickets     ticket.TicketRepository
}

func NewDashboardSource(db *database.DB) dashboard.Source {
	return &dashboardSourceImpl{
		employees:   NewEmployeeRepository(db),
		departments: NewDepartmentRepository(db),
		clients:     NewClientRepository(db),
		projects:    NewProjectRepository(db),
		tasks:       NewTaskRepository(db),
		tickets:     NewTicketRepository(db),
	}
}

func (s *dashboardSourceImpl) Employees(ctx context.Context) ([]employee.Employee, error) {
	return s.employees.List(ctx)
}

func (s *dashboardSourceImpl) Departments(ctx context.Context) ([]department.Department, error) {
	return s.departments.List(ctx)
}

func (s *dashboardSourceImpl) Clients(ctx context.Context) ([]client.Client, error) {
	return s.clients.List(ctx)
}

func (s *dashboardSourceImpl) Projects(ctx context.Context) ([]project.Project, error) {
	return s.projects.List(ctx, project.ListFilter{})
}

func (s *dashboardSourceImpl) Tasks(ctx context.Context) ([]task.Task, error) {
	return s.tasks.List(ctx, task.ListFilter{})
}

func (s *dashboardSourceImpl) Tickets(ctx context.Context) ([]ticket.Ticket, error) {
	return s.tickets.List(ctx, ticket.ListFilter{})
}
