package employee

import (
	"strings"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/datetime"
)

type Employee struct {
	ID           int64         `json:"employeeId"`
	FirstName    string        `json:"firstName"`
	LastName     string        `json:"lastName"`
	Email        string        `json:"email"`
	HireDate     datetime.Time `json:"hireDate"`
	JobTitle     string        `json:"jobTitle"`
	DepartmentID *int64        `json:"departmentId"`
	ManagerID    *int64        `json:"managerId"`
	Age          *int          `json:"age"`
	Sexe         string        `json:"sexe"`
	Status       Status        `json:"status"`
}

// FullName joins first and last name.
func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// DepartmentKey is the filter key for the department dimension.
func (e Employee) DepartmentKey() (int64, bool) {
	if e.DepartmentID == nil {
		return 0, false
	}
	return *e.DepartmentID, true
}

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
	StatusOnLeave  Status = "On Leave"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusActive, StatusInactive, StatusOnLeave:
		return Status(s), true
	}
	return "", false
}

const (
	SexeMale   = "M"
	SexeFemale = "F"
)

// SexeLabel maps the stored code to the label shown on charts.
func SexeLabel(sexe string) string {
	switch sexe {
	case SexeMale:
		return "Male"
	case SexeFemale:
		return "Female"
	case "":
		return ""
	}
	return "Other"
}
