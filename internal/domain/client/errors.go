package client

import "errors"

var (
	ErrClientNotFound    = errors.New("client not found")
	ErrClientEmailExists = errors.New("client email already registered")
	ErrClientInUse       = errors.New("client still has projects")
)
