package contract

import (
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/datetime"
	"github.com/shopspring/decimal"
)

type Contract struct {
	ID              int64           `json:"contractId"`
	EmployeeID      int64           `json:"employeeId"`
	ContractType    ContractType    `json:"contractType"`
	WorkHours       int             `json:"workHours"`
	Salary          decimal.Decimal `json:"salary"`
	RemoteAvailable bool            `json:"remoteAvailable"`
	StartDate       datetime.Time   `json:"startDate"`
	EndDate         *datetime.Time  `json:"endDate,omitempty"`
	Benefits        *string         `json:"benefits,omitempty"`
	Status          Status          `json:"status"`
}

type ContractType string

const (
	TypeCDI        ContractType = "CDI"
	TypeCDD        ContractType = "CDD"
	TypeFreelance  ContractType = "Freelance"
	TypeStage      ContractType = "Stage"
	TypeAlternance ContractType = "Alternance"
)

var contractTypes = []ContractType{TypeCDI, TypeCDD, TypeFreelance, TypeStage, TypeAlternance}

// ParseContractType matches the display names used by the API.
func ParseContractType(s string) (ContractType, bool) {
	for _, t := range contractTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// IsPermanent reports whether the contract has no end date.
func (t ContractType) IsPermanent() bool {
	return t == TypeCDI
}

type Status string

const (
	StatusActive     Status = "Active"
	StatusTerminated Status = "Terminé"
	StatusSuspended  Status = "Suspendu"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusActive, StatusTerminated, StatusSuspended:
		return Status(s), true
	}
	return "", false
}
