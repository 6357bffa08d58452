package employee

import (
	"strings"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/domain/contract"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/datetime"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/wizard"
)

const (
	MinAge = 18
	MaxAge = 70
)

// CreateEmployeeRequest is the add-employee form. Numeric fields arrive as raw text and are
// parsed during validation.
type CreateEmployeeRequest struct {
	// Employee Information
	FirstName string              `json:"firstName"`
	LastName  string              `json:"lastName"`
	Email     string              `json:"email"`
	HireDate  string              `json:"hireDate"`
	JobTitle  string              `json:"jobTitle"`
	ManagerID validator.FormValue `json:"managerId"`
	Status    string              `json:"status"`
	Age       validator.FormValue `json:"age"`
	Sexe      string              `json:"sexe"`

	// Department Details
	DepartmentID   validator.FormValue `json:"departmentId"`
	SkipDepartment bool                `json:"skipDepartment"`

	// Contract Terms
	ContractType      string              `json:"contractType"`
	WorkHours         validator.FormValue `json:"workHours"`
	Salary            validator.FormValue `json:"salary"`
	RemoteAvailable   bool                `json:"remoteAvailable"`
	ContractStartDate string              `json:"contractStartDate"`
	ContractEndDate   string              `json:"contractEndDate"`
	Benefits          string              `json:"benefits"`
	ContractStatus    string              `json:"contractStatus"`
}

// Steps returns the add-employee wizard pages in order.
func Steps() []wizard.Step[CreateEmployeeRequest] {
	return append(ProfileSteps(), wizard.Step[CreateEmployeeRequest]{Name: "Contract Terms", Validate: validateContract})
}

// ProfileSteps returns the pages that describe the employee without its contract.
func ProfileSteps() []wizard.Step[CreateEmployeeRequest] {
	return []wizard.Step[CreateEmployeeRequest]{
		{Name: "Employee Information", Validate: validateInformation},
		{Name: "Department Details", Validate: validateDepartment},
	}
}

func validateInformation(r CreateEmployeeRequest) validator.ValidationErrors {
	var errs validator.ValidationErrors
	errs.Required("firstName", "First name", r.FirstName)
	errs.Required("lastName", "Last name", r.LastName)
	errs.Email("email", r.Email)
	errs.RequiredDate("hireDate", "Hire date", r.HireDate)
	errs.Required("jobTitle", "Job title", r.JobTitle)
	errs.IntBetween("age", "Age", r.Age, MinAge, MaxAge)
	if errs.Required("sexe", "Gender", r.Sexe) {
		if s := strings.TrimSpace(r.Sexe); s != SexeMale && s != SexeFemale {
			errs.Add("sexe", "Gender must be M or F")
		}
	}
	if !r.ManagerID.IsEmpty() {
		if _, ok := r.ManagerID.ID(); !ok {
			errs.Add("managerId", "Manager is invalid")
		}
	}
	if !validator.IsEmpty(r.Status) {
		if _, ok := ParseStatus(strings.TrimSpace(r.Status)); !ok {
			errs.Add("status", "Status is invalid")
		}
	}
	return errs
}

func validateDepartment(r CreateEmployeeRequest) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if r.SkipDepartment {
		return errs
	}
	if r.DepartmentID.IsEmpty() {
		errs.Add("departmentId", "Please select a department or skip this step")
		return errs
	}
	if _, ok := r.DepartmentID.ID(); !ok {
		errs.Add("departmentId", "Department is invalid")
	}
	return errs
}

// contractFields maps contract rule fields onto the add-employee form.
var contractFields = map[string]string{
	"startDate": "contractStartDate",
	"endDate":   "contractEndDate",
	"status":    "contractStatus",
}

func validateContract(r CreateEmployeeRequest) validator.ValidationErrors {
	return r.terms().Validate().Rename(contractFields)
}

func (r CreateEmployeeRequest) terms() contract.Terms {
	return contract.Terms{
		ContractType:    r.ContractType,
		WorkHours:       r.WorkHours,
		Salary:          r.Salary,
		RemoteAvailable: r.RemoteAvailable,
		StartDate:       r.ContractStartDate,
		EndDate:         r.ContractEndDate,
		Benefits:        r.Benefits,
		Status:          r.ContractStatus,
	}
}

// ToEmployee converts a validated request.
func (r CreateEmployeeRequest) ToEmployee() Employee {
	hire, _ := validator.IsValidDate(r.HireDate)
	e := Employee{
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Email:     strings.ToLower(strings.TrimSpace(r.Email)),
		HireDate:  datetime.New(hire),
		JobTitle:  strings.TrimSpace(r.JobTitle),
		Sexe:      strings.TrimSpace(r.Sexe),
		Status:    StatusActive,
	}
	if s, ok := ParseStatus(strings.TrimSpace(r.Status)); ok {
		e.Status = s
	}
	if age, ok := r.Age.Int(); ok {
		e.Age = &age
	}
	if id, ok := r.ManagerID.ID(); ok {
		e.ManagerID = &id
	}
	if !r.SkipDepartment {
		if id, ok := r.DepartmentID.ID(); ok {
			e.DepartmentID = &id
		}
	}
	return e
}

// ToContract converts a validated request. EmployeeID is set by the caller.
func (r CreateEmployeeRequest) ToContract() contract.Contract {
	return r.terms().ToContract()
}

// UpdateEmployeeRequest changes the sent profile fields of an employee. An empty
// departmentId or managerId clears it. Contracts change through their own resource.
type UpdateEmployeeRequest struct {
	FirstName    *string              `json:"firstName,omitempty"`
	LastName     *string              `json:"lastName,omitempty"`
	Email        *string              `json:"email,omitempty"`
	HireDate     *string              `json:"hireDate,omitempty"`
	JobTitle     *string              `json:"jobTitle,omitempty"`
	ManagerID    *validator.FormValue `json:"managerId,omitempty"`
	Status       *string              `json:"status,omitempty"`
	Age          *validator.FormValue `json:"age,omitempty"`
	Sexe         *string              `json:"sexe,omitempty"`
	DepartmentID *validator.FormValue `json:"departmentId,omitempty"`
}

// DraftFrom renders a stored employee as the profile part of the add-employee form.
func DraftFrom(e Employee) CreateEmployeeRequest {
	return CreateEmployeeRequest{
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		Email:          e.Email,
		HireDate:       e.HireDate.String(),
		JobTitle:       e.JobTitle,
		ManagerID:      validator.IDValue(e.ManagerID),
		Status:         string(e.Status),
		Age:            validator.IntValue(e.Age),
		Sexe:           e.Sexe,
		DepartmentID:   validator.IDValue(e.DepartmentID),
		SkipDepartment: e.DepartmentID == nil,
	}
}

// Apply overlays the sent fields on draft.
func (r UpdateEmployeeRequest) Apply(draft *CreateEmployeeRequest) {
	validator.Overlay(&draft.FirstName, r.FirstName)
	validator.Overlay(&draft.LastName, r.LastName)
	validator.Overlay(&draft.Email, r.Email)
	validator.Overlay(&draft.HireDate, r.HireDate)
	validator.Overlay(&draft.JobTitle, r.JobTitle)
	validator.Overlay(&draft.ManagerID, r.ManagerID)
	validator.Overlay(&draft.Status, r.Status)
	validator.Overlay(&draft.Age, r.Age)
	validator.Overlay(&draft.Sexe, r.Sexe)
	if r.DepartmentID != nil {
		draft.DepartmentID = *r.DepartmentID
		draft.SkipDepartment = r.DepartmentID.IsEmpty()
	}
}

// EmployeeResponse adds the resolved department name and manager name to an employee.
type EmployeeResponse struct {
	Employee
	FullName       string  `json:"fullName"`
	DepartmentName *string `json:"departmentName,omitempty"`
	ManagerName    *string `json:"managerName,omitempty"`
}

// CreateEmployeeResponse is returned after the employee and its contract were stored.
type CreateEmployeeResponse struct {
	Employee Employee          `json:"employee"`
	Contract contract.Contract `json:"contract"`
}
