package contract

import (
	"strings"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/datetime"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var (
	MinSalary = decimal.NewFromInt(1000)
	MaxSalary = decimal.NewFromInt(100000)
)

// Terms holds the editable contract fields as a form sends them.
type Terms struct {
	ContractType    string              `json:"contractType"`
	WorkHours       validator.FormValue `json:"workHours"`
	Salary          validator.FormValue `json:"salary"`
	RemoteAvailable bool                `json:"remoteAvailable"`
	StartDate       string              `json:"startDate"`
	EndDate         string              `json:"endDate"`
	Benefits        string              `json:"benefits"`
	Status          string              `json:"status"`
}

// Validate checks the terms. The end date is ignored for permanent contracts.
func (t Terms) Validate() validator.ValidationErrors {
	var errs validator.ValidationErrors
	var ct ContractType
	if errs.Required("contractType", "Contract type", t.ContractType) {
		var ok bool
		if ct, ok = ParseContractType(strings.TrimSpace(t.ContractType)); !ok {
			errs.Add("contractType", "Contract type is invalid")
		}
	}
	if hours, ok := t.WorkHours.Int(); t.WorkHours.IsEmpty() {
		errs.Add("workHours", "Work hours are required")
	} else if !ok {
		errs.Add("workHours", "Work hours must be a whole number")
	} else if hours <= 0 {
		errs.Add("workHours", "Work hours must be greater than 0")
	}
	errs.DecimalBetween("salary", "Salary", t.Salary, MinSalary, MaxSalary)
	start, _ := errs.RequiredDate("startDate", "Start date", t.StartDate)
	if !ct.IsPermanent() {
		end, _ := errs.OptionalDate("endDate", "End date", t.EndDate)
		errs.NotBefore("endDate", "End date", start, end)
	}
	if !validator.IsEmpty(t.Status) {
		if _, ok := ParseStatus(strings.TrimSpace(t.Status)); !ok {
			errs.Add("status", "Contract status is invalid")
		}
	}
	return errs
}

// ToContract converts validated terms. A blank status means Active.
func (t Terms) ToContract() Contract {
	ct, _ := ParseContractType(strings.TrimSpace(t.ContractType))
	hours, _ := t.WorkHours.Int()
	salary, _ := t.Salary.Decimal()
	start, _ := validator.IsValidDate(t.StartDate)
	c := Contract{
		ContractType:    ct,
		WorkHours:       hours,
		Salary:          salary,
		RemoteAvailable: t.RemoteAvailable,
		StartDate:       datetime.New(start),
		Status:          StatusActive,
	}
	if !ct.IsPermanent() {
		if end, ok := validator.IsValidDate(t.EndDate); ok {
			c.EndDate = datetime.Ptr(&end)
		}
	}
	if s, ok := ParseStatus(strings.TrimSpace(t.Status)); ok {
		c.Status = s
	}
	if b := strings.TrimSpace(t.Benefits); b != "" {
		c.Benefits = &b
	}
	return c
}

// TermsOf renders a stored contract as form terms.
func TermsOf(c Contract) Terms {
	t := Terms{
		ContractType:    string(c.ContractType),
		WorkHours:       validator.IntValue(&c.WorkHours),
		Salary:          validator.FormValue(c.Salary.String()),
		RemoteAvailable: c.RemoteAvailable,
		StartDate:       c.StartDate.Format(datetime.DateLayout),
		EndDate:         datetime.Format(c.EndDate),
		Status:          string(c.Status),
	}
	if c.Benefits != nil {
		t.Benefits = *c.Benefits
	}
	return t
}

// CreateContractRequest adds a contract to an existing employee.
type CreateContractRequest struct {
	EmployeeID validator.FormValue `json:"employeeId"`
	Terms
}

func (r CreateContractRequest) Validate() error {
	var errs validator.ValidationErrors
	errs.RequiredID("employeeId", "Employee", r.EmployeeID)
	errs = append(errs, r.Terms.Validate()...)
	return errs.Err()
}

func (r CreateContractRequest) ToContract() Contract {
	c := r.Terms.ToContract()
	c.EmployeeID, _ = r.EmployeeID.ID()
	return c
}

// UpdateContractRequest changes the sent fields of a contract. The employee cannot change.
type UpdateContractRequest struct {
	ContractType    *string              `json:"contractType,omitempty"`
	WorkHours       *validator.FormValue `json:"workHours,omitempty"`
	Salary          *validator.FormValue `json:"salary,omitempty"`
	RemoteAvailable *bool                `json:"remoteAvailable,omitempty"`
	StartDate       *string              `json:"startDate,omitempty"`
	EndDate         *string              `json:"endDate,omitempty"`
	Benefits        *string              `json:"benefits,omitempty"`
	Status          *string              `json:"status,omitempty"`
}

// Apply overlays the sent fields on t.
func (r UpdateContractRequest) Apply(t *Terms) {
	validator.Overlay(&t.ContractType, r.ContractType)
	validator.Overlay(&t.WorkHours, r.WorkHours)
	validator.Overlay(&t.Salary, r.Salary)
	validator.Overlay(&t.RemoteAvailable, r.RemoteAvailable)
	validator.Overlay(&t.StartDate, r.StartDate)
	validator.Overlay(&t.EndDate, r.EndDate)
	validator.Overlay(&t.Benefits, r.Benefits)
	validator.Overlay(&t.Status, r.Status)
}

// ListFilter narrows contract listings. Zero fields are ignored.
type ListFilter struct {
	EmployeeID   *int64
	ContractType *ContractType
}
