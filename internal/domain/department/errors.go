package department

import "errors"

var (
	ErrDepartmentNotFound   = errors.New("department not found")
	ErrDepartmentNameExists = errors.New("department name already exists")
	ErrInvalidManager       = errors.New("manager does not exist")
	ErrDepartmentInUse      = errors.New("department still has projects")
)
