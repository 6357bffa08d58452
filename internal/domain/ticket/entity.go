package ticket

import "github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/datetime"

type Ticket struct {
	ID          int64          `json:"ticketId"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	ClientID    *int64         `json:"clientId"`
	EmployeeID  *int64         `json:"employeeId"`
	Status      Status         `json:"status"`
	Priority    Priority       `json:"priority"`
	CreatedAt   datetime.Time  `json:"createdAt"`
	ResolvedAt  *datetime.Time `json:"resolvedAt,omitempty"`
}

// IsResolved treats closed tickets as resolved.
func (t Ticket) IsResolved() bool {
	return t.Status == StatusResolved || t.Status == StatusClosed
}

// EmployeeKey is the filter key for the employee dimension.
func (t Ticket) EmployeeKey() (int64, bool) {
	if t.EmployeeID == nil {
		return 0, false
	}
	return *t.EmployeeID, true
}

type Status string

const (
	StatusOpen       Status = "Open"
	StatusInProgress Status = "In Progress"
	StatusResolved   Status = "Resolved"
	StatusClosed     Status = "Closed"
	StatusReopened   Status = "Reopened"
)

var Statuses = []Status{StatusOpen, StatusInProgress, StatusResolved, StatusClosed, StatusReopened}

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
	ClientID   *int64
	EmployeeID *int64
	Status     *Status
	Priority   *Priority
	Title      string
}
