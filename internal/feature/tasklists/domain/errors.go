// Package domain holds the task list domain errors.
package domain

import "errors"

var (
	// ErrTaskListNotFound is returned when a list does not exist or is
	// owned by another user. Ownership failures are indistinguishable
	// from missing lists on purpose.
	ErrTaskListNotFound = errors.New("task list not found")

	// ErrInvalidListType is returned for a list type outside the catalog.
	ErrInvalidListType = errors.New("invalid list type")
)
