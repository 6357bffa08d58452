package client

import "github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/datetime"

type Client struct {
	ID            int64          `json:"clientId"`
	ClientName    string         `json:"clientName"`
	ContactPerson string         `json:"contactPerson"`
	Email         string         `json:"email"`
	Phone         *string        `json:"phone,omitempty"`
	ContractDate  *datetime.Time `json:"contractDate,omitempty"`
}
