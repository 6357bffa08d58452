package dashboard

import "errors"

var (
	ErrInvalidMonths    = errors.New("months must be 6 or 12")
	ErrInvalidWeighting = errors.New("weighting must be equal or volume")
	ErrInvalidDimension = errors.New("unknown distribution dimension")
	ErrInvalidLimit     = errors.New("limit must be between 1 and 100")
	ErrEmployeeNotFound = errors.New("employee not found")
)
