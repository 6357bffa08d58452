package client

import (
	"regexp"
	"strings"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/datetime"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/wizard"
)

var phoneRegex = regexp.MustCompile(`^\+?[0-9 ()\-]{6,20}$`)

type CreateClientRequest struct {
	ClientName    string `json:"clientName"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	ContractDate  string `json:"contractDate"`
}

// Steps returns the add-client wizard pages in order.
func Steps() []wizard.Step[CreateClientRequest] {
	return []wizard.Step[CreateClientRequest]{
		{Name: "Client Information", Validate: validateInformation},
		{Name: "Contract", Validate: validateContract},
	}
}

func validateInformation(r CreateClientRequest) validator.ValidationErrors {
	var errs validator.ValidationErrors
	errs.Required("clientName", "Client name", r.ClientName)
	errs.Required("contactPerson", "Contact person", r.ContactPerson)
	errs.Email("email", r.Email)
	if !validator.IsEmpty(r.Phone) && !phoneRegex.MatchString(strings.TrimSpace(r.Phone)) {
		errs.Add("phone", "Invalid phone number")
	}
	return errs
}

func validateContract(r CreateClientRequest) validator.ValidationErrors {
	var errs validator.ValidationErrors
	errs.RequiredDate("contractDate", "Contract date", r.ContractDate)
	return errs
}

func (r CreateClientRequest) ToClient() Client {
	c := Client{
		ClientName:    strings.TrimSpace(r.ClientName),
		ContactPerson: strings.TrimSpace(r.ContactPerson),
		Email:         strings.ToLower(strings.TrimSpace(r.Email)),
	}
	if p := strings.TrimSpace(r.Phone); p != "" {
		c.Phone = &p
	}
	if d, ok := validator.IsValidDate(r.ContractDate); ok {
		c.ContractDate = datetime.Ptr(&d)
	}
	return c
}

type UpdateClientRequest struct {
	ClientName    *string `json:"clientName,omitempty"`
	ContactPerson *string `json:"contactPerson,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	ContractDate  *string `json:"contractDate,omitempty"`
}

// DraftFrom renders a stored client as the add-client form.
func DraftFrom(c Client) CreateClientRequest {
	draft := CreateClientRequest{
		ClientName:    c.ClientName,
		ContactPerson: c.ContactPerson,
		Email:         c.Email,
		ContractDate:  datetime.Format(c.ContractDate),
	}
	if c.Phone != nil {
		draft.Phone = *c.Phone
	}
	return draft
}

func (r UpdateClientRequest) Apply(draft *CreateClientRequest) {
	validator.Overlay(&draft.ClientName, r.ClientName)
	validator.Overlay(&draft.ContactPerson, r.ContactPerson)
	validator.Overlay(&draft.Email, r.Email)
	validator.Overlay(&draft.Phone, r.Phone)
	validator.Overlay(&draft.ContractDate, r.ContractDate)
}
