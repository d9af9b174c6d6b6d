package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("bonus record not found")
	ErrInvalidArgument = errors.New("invalid argument")
)
