package project

import (
	"strings"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/datetime"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/wizard"
)

type CreateProjectRequest struct {
	// Project Details
	ProjectName  string              `json:"projectName"`
	ClientID     validator.FormValue `json:"clientId"`
	DepartmentID validator.FormValue `json:"departmentId"`
	ChefID       validator.FormValue `json:"chefId"`
	Description  string              `json:"description"`
	Status       string              `json:"status"`

	// Planning
	ProjectType string `json:"projectType"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	DueAt       string `json:"dueAt"`
}

func (r CreateProjectRequest) isOngoing() bool {
	return Type(strings.ToLower(strings.TrimSpace(r.ProjectType))) == TypeOngoing
}

// Steps returns the add-project wizard pages in order.
func Steps() []wizard.Step[CreateProjectRequest] {
	return []wizard.Step[CreateProjectRequest]{
		{Name: "Project Details", Validate: validateDetails},
		{Name: "Planning", Validate: validatePlanning},
	}
}

func validateDetails(r CreateProjectRequest) validator.ValidationErrors {
	var errs validator.ValidationErrors
	errs.Required("projectName", "Project name", r.ProjectName)
	errs.RequiredID("clientId", "Client", r.ClientID)
	errs.RequiredID("departmentId", "Department", r.DepartmentID)
	errs.RequiredID("chefId", "Project lead", r.ChefID)
	if !validator.IsEmpty(r.Status) {
		if _, ok := ParseStatus(strings.TrimSpace(r.Status)); !ok {
			errs.Add("status", "Status is invalid")
		}
	}
	return errs
}

func validatePlanning(r CreateProjectRequest) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if t := Type(strings.ToLower(strings.TrimSpace(r.ProjectType))); t != "" && t != TypeFixed && t != TypeOngoing {
		errs.Add("projectType", "Project type must be fixed or ongoing")
	}
	start, _ := errs.RequiredDate("startDate", "Start date", r.StartDate)
	if !r.isOngoing() {
		end, _ := errs.OptionalDate("endDate", "End date", r.EndDate)
		errs.NotBefore("endDate", "End date", start, end)
	}
	errs.OptionalDate("dueAt", "Due date", r.DueAt)
	return errs
}

func (r CreateProjectRequest) ToProject() Project {
	clientID, _ := r.ClientID.ID()
	departmentID, _ := r.DepartmentID.ID()
	chefID, _ := r.ChefID.ID()
	start, _ := validator.IsValidDate(r.StartDate)
	p := Project{
		ProjectName:  strings.TrimSpace(r.ProjectName),
		ClientID:     clientID,
		DepartmentID: departmentID,
		ChefID:       chefID,
		StartDate:    datetime.New(start),
		Status:       StatusPending,
	}
	if s, ok := ParseStatus(strings.TrimSpace(r.Status)); ok {
		p.Status = s
	}
	if !r.isOngoing() {
		if end, ok := validator.IsValidDate(r.EndDate); ok {
			p.EndDate = datetime.Ptr(&end)
		}
	}
	if due, ok := validator.IsValidDate(r.DueAt); ok {
		p.DueAt = datetime.Ptr(&due)
	}
	if d := strings.TrimSpace(r.Description); d != "" {
		p.Description = &d
	}
	return p
}

// UpdateProjectRequest changes the sent fields. Sending projectType "ongoing" drops the end date.
type UpdateProjectRequest struct {
	ProjectName  *string              `json:"projectName,omitempty"`
	ClientID     *validator.FormValue `json:"clientId,omitempty"`
	DepartmentID *validator.FormValue `json:"departmentId,omitempty"`
	ChefID       *validator.FormValue `json:"chefId,omitempty"`
	Description  *string              `json:"description,omitempty"`
	Status       *string              `json:"status,omitempty"`
	ProjectType  *string              `json:"projectType,omitempty"`
	StartDate    *string              `json:"startDate,omitempty"`
	EndDate      *string              `json:"endDate,omitempty"`
	DueAt        *string              `json:"dueAt,omitempty"`
}

// DraftFrom renders a stored project as the add-project form. A project without an end
// date is ongoing.
func DraftFrom(p Project) CreateProjectRequest {
	draft := CreateProjectRequest{
		ProjectName:  p.ProjectName,
		ClientID:     validator.IDValue(&p.ClientID),
		DepartmentID: validator.IDValue(&p.DepartmentID),
		ChefID:       validator.IDValue(&p.ChefID),
		Status:       string(p.Status),
		ProjectType:  string(TypeFixed),
		StartDate:    p.StartDate.String(),
		EndDate:      datetime.Format(p.EndDate),
		DueAt:        datetime.Format(p.DueAt),
	}
	if p.EndDate == nil {
		draft.ProjectType = string(TypeOngoing)
	}
	if p.Description != nil {
		draft.Description = *p.Description
	}
	return draft
}

func (r UpdateProjectRequest) Apply(draft *CreateProjectRequest) {
	validator.Overlay(&draft.ProjectName, r.ProjectName)
	validator.Overlay(&draft.ClientID, r.ClientID)
	validator.Overlay(&draft.DepartmentID, r.DepartmentID)
	validator.Overlay(&draft.ChefID, r.ChefID)
	validator.Overlay(&draft.Description, r.Description)
	validator.Overlay(&draft.Status, r.Status)
	validator.Overlay(&draft.ProjectType, r.ProjectType)
	validator.Overlay(&draft.StartDate, r.StartDate)
	validator.Overlay(&draft.EndDate, r.EndDate)
	validator.Overlay(&draft.DueAt, r.DueAt)
}
