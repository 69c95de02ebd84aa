package repository

import "errors"

var (
	// ErrNotFound is returned when an entity with the requested ID does
	// not exist in the repository.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateID is returned when adding an entity whose ID is
	// already present.
	ErrDuplicateID = errors.New("duplicate id")
)
