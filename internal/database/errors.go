package database

import "errors"

// Sentinel errors returned by repositories so handlers can map them to
// status codes without string matching.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrInvalidInput   = errors.New("invalid input")
)
