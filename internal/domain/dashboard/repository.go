package dashboard

import (
	"context"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/client"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/ticket"
)

// Source loads whole entity collections. Implementations are the PostgreSQL repositories
// and the remote REST client.
type Source interface {
	Employees(ctx context.Context) ([]employee.Employee, error)
	Departments(ctx context.Context) ([]department.Department, error)
	Clients(ctx context.Context) ([]client.Client, error)
	Projects(ctx context.Context) ([]project.Project, error)
	Tasks(ctx context.Context) ([]task.Task, error)
	Tickets(ctx context.Context) ([]ticket.Ticket, error)
}

// SnapshotStore hands out the latest fetched snapshot.
type SnapshotStore interface {
	// Current returns the cached snapshot, fetching a new batch when none is usable
	Current(ctx context.Context) (*Snapshot, error)

	// Refresh fetches a new batch and publishes it unless a later batch already did
	Refresh(ctx context.Context) (*Snapshot, error)

	Invalidator
}

// Invalidator marks collections stale after a write so the next read re-fetches them.
type Invalidator interface {
	Invalidate(collections ...Collection)
}
