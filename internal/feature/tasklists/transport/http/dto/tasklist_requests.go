// Package dto defines the request bodies of the task list endpoints.
package dto

// CreateTaskListRequest is the body of POST /api/tasklists.
// The list type is validated against the catalog in the usecase so the
// error taxonomy stays in one place.
type CreateTaskListRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	ListType    string `json:"listType" binding:"required"`
	Color       string `json:"color" binding:"omitempty,hexcolor"`
	Description string `json:"description" binding:"omitempty,max=200"`
	CustomIcon  string `json:"customIcon" binding:"omitempty,max=64"`
}

// UpdateTaskListRequest is the body of PUT /api/tasklists/:id.
// Nil flags leave the stored value untouched.
type UpdateTaskListRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	ListType    string `json:"listType" binding:"required"`
	Color       string `json:"color" binding:"omitempty,hexcolor"`
	Description string `json:"description" binding:"omitempty,max=200"`
	IsArchived  *bool  `json:"isArchived"`
	IsPinned    *bool  `json:"isPinned"`
}
