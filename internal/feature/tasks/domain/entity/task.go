// Package entity defines the task domain model.
package entity

import "time"

// TaskType categorizes what kind of work a task represents.
type TaskType string

const (
	TaskTypeICT         TaskType = "ICT"
	TaskTypeDevelopment TaskType = "DEVELOPMENT"
	TaskTypeDesign      TaskType = "DESIGN"
	TaskTypeMeeting     TaskType = "MEETING"
	TaskTypeBugFix      TaskType = "BUG_FIX"
	TaskTypeFeature     TaskType = "FEATURE"
	TaskTypeOther       TaskType = "OTHER"
)

// Valid reports whether t is one of the known task types.
func (t TaskType) Valid() bool {
	switch t {
	case TaskTypeICT, TaskTypeDevelopment, TaskTypeDesign, TaskTypeMeeting,
		TaskTypeBugFix, TaskTypeFeature, TaskTypeOther:
		return true
	}
	return false
}

// Status tracks a task through its workflow.
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusReview     Status = "REVIEW"
	StatusDone       Status = "DONE"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

// Priority ranks a task's urgency. Values are lower case on the wire.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task represents a single todo item inside a task list.
type Task struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Name       string     `gorm:"size:200;not null" json:"name"`
	Completed  bool       `gorm:"not null;default:false;index:idx_tasks_list_completed,priority:2" json:"completed"`
	TaskListID uint       `gorm:"not null;index:idx_tasks_list_completed,priority:1" json:"taskList"`
	UserID     uint       `gorm:"not null;index" json:"-"`
	TaskType   TaskType   `gorm:"size:16;not null;default:OTHER;index" json:"taskType"`
	Status     Status     `gorm:"size:16;not null;default:TODO;index" json:"status"`
	Priority   Priority   `gorm:"size:8;not null;default:medium" json:"priority"`
	DueDate    *time.Time `gorm:"index" json:"dueDate,omitempty"`
	StartDate  *time.Time `json:"startDate,omitempty"`
	Notes      string     `gorm:"size:1000" json:"notes,omitempty"`
	Tags       []string   `gorm:"serializer:json" json:"tags,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MarkStatus sets the workflow status and keeps the completed flag in sync.
func (t *Task) MarkStatus(s Status) {
	t.Status = s
	t.Completed = s == StatusDone
}
