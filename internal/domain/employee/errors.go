package employee

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrEmailExists       = errors.New("email already registered")
	ErrInvalidDepartment = errors.New("department does not exist")
	ErrInvalidManager    = errors.New("manager does not exist")
	ErrEmployeeInUse     = errors.New("employee still leads a project")
	ErrSelfManager       = errors.New("employee cannot manage themselves")
)
