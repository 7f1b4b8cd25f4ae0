package services

import "errors"

// Store-layer failures that are not one of these are treated as
// internal and surfaced to the client as a generic 500.
var (
	ErrValidation  = errors.New("validation failed")
	ErrConflict    = errors.New("conflict")
	ErrNotFound    = errors.New("not found")
	ErrCartExpired = errors.New("cart has expired")
)
