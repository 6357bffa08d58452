// Package remote reads the dashboard collections from a REST API instead of the database.
package remote

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/client"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/ticket"
)

// Getter is satisfied by *apiclient.Client.
type Getter interface {
	GetJSON(ctx context.Context, path string, out any) error
}

type sourceImpl struct {
	api Getter
}

func NewDashboardSource(api Getter) dashboard.Source {
	return &sourceImpl{api: api}
}

func get[T any](ctx context.Context, api Getter, c dashboard.Collection) ([]T, error) {
	var items []T
	if err := api.GetJSON(ctx, string(c), &items); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", c, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (s *sourceImpl) Employees(ctx context.Context) ([]employee.Employee, error) {
	return get[employee.Employee](ctx, s.api, dashboard.CollectionEmployees)
}

func (s *sourceImpl) Departments(ctx context.Context) ([]department.Department, error) {
	return get[department.Department](ctx, s.api, dashboard.CollectionDepartments)
}

func (s *sourceImpl) Clients(ctx context.Context) ([]client.Client, error) {
	return get[client.Client](ctx, s.api, dashboard.CollectionClients)
}

func (s *sourceImpl) Projects(ctx context.Context) ([]project.Project, error) {
	return get[project.Project](ctx, s.api, dashboard.CollectionProjects)
}

func (s *sourceImpl) Tasks(ctx context.Context) ([]task.Task, error) {
	return get[task.Task](ctx, s.api, dashboard.CollectionTasks)
}

func (s *sourceImpl) Tickets(ctx context.Context) ([]ticket.Ticket, error) {
	return get[ticket.Ticket](ctx, s.api, dashboard.CollectionTickets)
}
