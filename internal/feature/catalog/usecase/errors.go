package usecase

import "errors"

var (
	// ErrBookNotFound is returned when no book has the requested id.
	ErrBookNotFound = errors.New("book not found")

	// ErrIDMismatch is returned when the id in the path differs from the id in the body.
	ErrIDMismatch = errors.New("ID in URL and body must match")
)
