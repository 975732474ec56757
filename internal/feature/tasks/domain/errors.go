// Package domain holds the task domain errors.
package domain

import "errors"

var (
	// ErrTaskNotFound is returned when a task does not exist or is owned
	// by another user.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidStatus is returned for a status outside the workflow.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidTaskType is returned for a type outside the catalog.
	ErrInvalidTaskType = errors.New("invalid task type")

	// ErrInvalidPriority is returned for a priority outside low/medium/high.
	ErrInvalidPriority = errors.New("invalid priority level")
)
