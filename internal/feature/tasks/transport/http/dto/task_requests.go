// Package dto defines the request bodies of the task endpoints.
package dto

import "time"

// TaskRequest is the body of POST /api/tasks and PUT /api/tasks/:id.
// Enum fields are validated against the catalogs in the usecase.
type TaskRequest struct {
	Name      string     `json:"name" binding:"required,max=200"`
	TaskList  uint       `json:"taskList" binding:"required"`
	Completed bool       `json:"completed"`
	TaskType  string     `json:"taskType"`
	Status    string     `json:"status"`
	Priority  string     `json:"priority"`
	DueDate   *time.Time `json:"dueDate"`
	StartDate *time.Time `json:"startDate"`
	Notes     string     `json:"notes" binding:"omitempty,max=1000"`
	Tags      []string   `json:"tags"`
}

// UpdateTaskStatusRequest is the body of PATCH /api/tasks/:id/status.
type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
