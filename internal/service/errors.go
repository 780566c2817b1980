package service

import "errors"

var (
	// ErrNotFound means the requested webhook does not exist. Callers use
	// it to distinguish "nothing there" from a storage failure.
	ErrNotFound = errors.New("webhook not found")
)
