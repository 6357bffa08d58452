package task

import "errors"

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrInvalidEmployee = errors.New("employee does not exist")
	ErrInvalidProject  = errors.New("project does not exist")
)
