package task

import (
	"time"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/datetime"
)

type Task struct {
	ID            int64          `json:"taskId"`
	EmployeeID    int64          `json:"employeeId"`
	ProjectID     *int64         `json:"projectId"`
	Title         string         `json:"title"`
	Description   *string        `json:"description,omitempty"`
	Status        Status         `json:"status"`
	Priority      Priority       `json:"priority"`
	AssignedDate  datetime.Time  `json:"assignedDate"`
	DueDate       *datetime.Time `json:"dueDate,omitempty"`
	CompletedDate *datetime.Time `json:"completedDate,omitempty"`
}

func (t Task) IsCompleted() bool { return t.Status == StatusCompleted }

// IsOverdue reports whether the due date has passed and the task is still open.
func (t Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && !t.IsCompleted() && t.DueDate.Time.Before(now)
}

type Status string

const (
	StatusNotStarted Status = "Not Started"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusBlocked    Status = "Blocked"
)

var Statuses = []Status{StatusNotStarted, StatusInProgress, StatusCompleted, StatusBlocked}

func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func ParsePriority(s string) (Priority, bool) {
	for _, p := range Priorities {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

type ListFilter struct {
	EmployeeID *int64
	ProjectID  *int64
	Status     *Status
	Priority   *Priority
	Title      string
}
