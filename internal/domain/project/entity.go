package project

import (
	"time"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/datetime"
)

type Project struct {
	ID           int64          `json:"projectId"`
	ProjectName  string         `json:"projectName"`
	ClientID     int64          `json:"clientId"`
	DepartmentID int64          `json:"departmentId"`
	ChefID       int64          `json:"chefId"`
	StartDate    datetime.Time  `json:"startDate"`
	EndDate      *datetime.Time `json:"endDate,omitempty"`
	Status       Status         `json:"status"`
	Description  *string        `json:"description,omitempty"`
	DueAt        *datetime.Time `json:"dueAt,omitempty"`
}

// IsOverdue reports whether the due date is before today's date and the project is not
// completed.
func (p Project) IsOverdue(now time.Time) bool {
	if p.DueAt == nil || p.Status == StatusCompleted {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return p.DueAt.Time.Before(today)
}

type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
)

// Statuses lists project states in display order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}

func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Type is the planning variant chosen in the wizard. Ongoing projects have no end date.
type Type string

const (
	TypeFixed   Type = "fixed"
	TypeOngoing Type = "ongoing"
)

// ListFilter narrows project listings. Zero fields are ignored.
type ListFilter struct {
	ClientID     *int64
	DepartmentID *int64
	ChefID       *int64
	Status       *Status
	Name         string
}
