package ticket

import "errors"

var (
	ErrTicketNotFound  = errors.New("ticket not found")
	ErrInvalidClient   = errors.New("client does not exist")
	ErrInvalidEmployee = errors.New("employee does not exist")
)
