package task

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/datetime"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/validator"
)

type CreateTaskRequest struct {
	EmployeeID   validator.FormValue `json:"employeeId"`
	ProjectID    validator.FormValue `json:"projectId"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Status       string              `json:"status"`
	Priority     string              `json:"priority"`
	AssignedDate string              `json:"assignedDate"`
	DueDate      string              `json:"dueDate"`
}

func (r CreateTaskRequest) Validate() error {
	var errs validator.ValidationErrors
	errs.Required("title", "Title", r.Title)
	errs.RequiredID("employeeId", "Employee", r.EmployeeID)
	if !r.ProjectID.IsEmpty() {
		if _, ok := r.ProjectID.ID(); !ok {
			errs.Add("projectId", "Project is invalid")
		}
	}
	if !validator.IsEmpty(r.Status) {
		if _, ok := ParseStatus(strings.TrimSpace(r.Status)); !ok {
			errs.Add("status", "Status is invalid")
		}
	}
	if !validator.IsEmpty(r.Priority) {
		if _, ok := ParsePriority(strings.TrimSpace(r.Priority)); !ok {
			errs.Add("priority", "Priority must be Low, Medium or High")
		}
	}
	if !validator.IsEmpty(r.AssignedDate) {
		if _, err := datetime.Parse(r.AssignedDate); err != nil {
			errs.Add("assignedDate", "Assigned date is invalid")
		}
	}
	if !validator.IsEmpty(r.DueDate) {
		if _, err := datetime.Parse(r.DueDate); err != nil {
			errs.Add("dueDate", "Due date is invalid")
		}
	}
	return errs.Err()
}

// ToTask converts a validated request. A missing assigned date defaults to now.
func (r CreateTaskRequest) ToTask(now time.Time) Task {
	employeeID, _ := r.EmployeeID.ID()
	t := Task{
		EmployeeID:   employeeID,
		Title:        strings.TrimSpace(r.Title),
		Status:       StatusNotStarted,
		Priority:     PriorityMedium,
		AssignedDate: datetime.New(now),
	}
	if id, ok := r.ProjectID.ID(); ok {
		t.ProjectID = &id
	}
	if d := strings.TrimSpace(r.Description); d != "" {
		t.Description = &d
	}
	if s, ok := ParseStatus(strings.TrimSpace(r.Status)); ok {
		t.Status = s
	}
	if p, ok := ParsePriority(strings.TrimSpace(r.Priority)); ok {
		t.Priority = p
	}
	if a, err := datetime.Parse(r.AssignedDate); err == nil {
		t.AssignedDate = a
	}
	if d, err := datetime.Parse(r.DueDate); err == nil {
		t.DueDate = &d
	}
	if t.Status == StatusCompleted {
		t.CompletedDate = &datetime.Time{Time: now}
	}
	return t
}

type UpdateTaskRequest struct {
	EmployeeID   *validator.FormValue `json:"employeeId,omitempty"`
	ProjectID    *validator.FormValue `json:"projectId,omitempty"`
	Title        *string              `json:"title,omitempty"`
	Description  *string              `json:"description,omitempty"`
	Status       *string              `json:"status,omitempty"`
	Priority     *string              `json:"priority,omitempty"`
	AssignedDate *string              `json:"assignedDate,omitempty"`
	DueDate      *string              `json:"dueDate,omitempty"`
}

// DraftFrom renders a stored task as the create form.
func DraftFrom(t Task) CreateTaskRequest {
	draft := CreateTaskRequest{
		EmployeeID:   validator.IDValue(&t.EmployeeID),
		ProjectID:    validator.IDValue(t.ProjectID),
		Title:        t.Title,
		Status:       string(t.Status),
		Priority:     string(t.Priority),
		AssignedDate: t.AssignedDate.String(),
		DueDate:      datetime.Format(t.DueDate),
	}
	if t.Description != nil {
		draft.Description = *t.Description
	}
	return draft
}

func (r UpdateTaskRequest) Apply(draft *CreateTaskRequest) {
	validator.Overlay(&draft.EmployeeID, r.EmployeeID)
	validator.Overlay(&draft.ProjectID, r.ProjectID)
	validator.Overlay(&draft.Title, r.Title)
	validator.Overlay(&draft.Description, r.Description)
	validator.Overlay(&draft.Status, r.Status)
	validator.Overlay(&draft.Priority, r.Priority)
	validator.Overlay(&draft.AssignedDate, r.AssignedDate)
	validator.Overlay(&draft.DueDate, r.DueDate)
}
