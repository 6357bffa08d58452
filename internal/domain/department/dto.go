package department

import (
	"strings"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/validator"
)

type CreateDepartmentRequest struct {
	DepartmentName string              `json:"departmentName"`
	Description    string              `json:"description"`
	ManagerID      validator.FormValue `json:"managerId"`
}

func (r CreateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors
	errs.Required("departmentName", "Department name", r.DepartmentName)
	if !r.ManagerID.IsEmpty() {
		if _, ok := r.ManagerID.ID(); !ok {
			errs.Add("managerId", "Manager is invalid")
		}
	}
	return errs.Err()
}

func (r CreateDepartmentRequest) ToDepartment() Department {
	d := Department{DepartmentName: strings.TrimSpace(r.DepartmentName)}
	if desc := strings.TrimSpace(r.Description); desc != "" {
		d.Description = &desc
	}
	if id, ok := r.ManagerID.ID(); ok {
		d.ManagerID = &id
	}
	return d
}

// UpdateDepartmentRequest changes the sent fields. An empty managerId removes the head.
type UpdateDepartmentRequest struct {
	DepartmentName *string              `json:"departmentName,omitempty"`
	Description    *string              `json:"description,omitempty"`
	ManagerID      *validator.FormValue `json:"managerId,omitempty"`
}

// DraftFrom renders a stored department as the create form.
func DraftFrom(d Department) CreateDepartmentRequest {
	draft := CreateDepartmentRequest{
		DepartmentName: d.DepartmentName,
		ManagerID:      validator.IDValue(d.ManagerID),
	}
	if d.Description != nil {
		draft.Description = *d.Description
	}
	return draft
}

func (r UpdateDepartmentRequest) Apply(draft *CreateDepartmentRequest) {
	validator.Overlay(&draft.DepartmentName, r.DepartmentName)
	validator.Overlay(&draft.Description, r.Description)
	validator.Overlay(&draft.ManagerID, r.ManagerID)
}
