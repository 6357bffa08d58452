package project

import "errors"

var (
	ErrProjectNotFound   = errors.New("project not found")
	ErrInvalidClient     = errors.New("client does not exist")
	ErrInvalidDepartment = errors.New("department does not exist")
	ErrInvalidChef       = errors.New("project lead does not exist")
	ErrInvalidStatus     = errors.New("invalid project status")
	ErrInvalidDateRange  = errors.New("end date must not be before start date")
)
