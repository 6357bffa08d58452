package dashboard

import (
	"time"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/client"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/ticket"
	"github.com/google/uuid"
)

type Collection string

const (
	CollectionEmployees   Collection = "employees"
	CollectionDepartments Collection = "departments"
	CollectionClients     Collection = "clients"
	CollectionProjects    Collection = "projects"
	CollectionTasks       Collection = "tasks"
	CollectionTickets     Collection = "tickets"
)

var Collections = []Collection{
	CollectionEmployees,
	CollectionDepartments,
	CollectionClients,
	CollectionProjects,
	CollectionTasks,
	CollectionTickets,
}

// Snapshot is one settled fetch batch. It is never modified after being published; a
// refresh replaces it wholesale.
type Snapshot struct {
	ID          uuid.UUID
	Generation  uint64
	FetchedAt   time.Time
	Employees   []employee.Employee
	Departments []department.Department
	Clients     []client.Client
	Projects    []project.Project
	Tasks       []task.Task
	Tickets     []ticket.Ticket
	// Failures maps a collection that could not be fetched to the error text. The
	// collection itself is empty.
	Failures map[Collection]string
}

// Info summarises a snapshot for API responses.
func (s *Snapshot) Info() SnapshotInfo {
	info := SnapshotInfo{
		ID:        s.ID.String(),
		FetchedAt: s.FetchedAt.UTC().Format(time.RFC3339),
		Counts: map[Collection]int{
			CollectionEmployees:   len(s.Employees),
			CollectionDepartments: len(s.Departments),
			CollectionClients:     len(s.Clients),
			CollectionProjects:    len(s.Projects),
			CollectionTasks:       len(s.Tasks),
			CollectionTickets:     len(s.Tickets),
		},
	}
	if len(s.Failures) > 0 {
		info.Failures = s.Failures
	}
	return info
}
