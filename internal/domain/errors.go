package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness constraint was violated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidInput indicates a request failed field validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrForbidden indicates the actor may not act on the entity.
	ErrForbidden = errors.New("forbidden")
)
