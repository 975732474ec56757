// Package usecase implements the business logic for task operations.
package usecase

import (
	"context"
	"strings"
	"time"

	tasklistentity "task_backend/internal/feature/tasklists/domain/entity"
	"task_backend/internal/feature/tasks/domain"
	"task_backend/internal/feature/tasks/domain/entity"
)

// TaskFilter narrows a task list query. Empty fields match everything.
type TaskFilter struct {
	Status   string
	TaskType string
	Priority string
}

// TaskRepository abstracts the persistence layer for tasks.
// Interfaces are defined by the consumer (usecase), not the provider (adapters).
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	FindByIDAndUser(ctx context.Context, id, userID uint) (*entity.Task, error)
	ListByTaskList(ctx context.Context, taskListID, userID uint, filter TaskFilter) ([]entity.Task, error)
	Save(ctx context.Context, task *entity.Task) error
	Delete(ctx context.Context, id, userID uint) error
}

// TaskListFinder resolves a task list owned by a user. Satisfied by the
// task list repository so that task creation can check list ownership.
type TaskListFinder interface {
	FindByIDAndUser(ctx context.Context, id, userID uint) (*tasklistentity.TaskList, error)
}

// TaskInput carries the writable fields of a task.
type TaskInput struct {
	Name       string
	TaskListID uint
	Completed  bool
	TaskType   string
	Status     string
	Priority   string
	DueDate    *time.Time
	StartDate  *time.Time
	Notes      string
	Tags       []string
}

// TaskUsecase provides business logic for task operations.
type TaskUsecase struct {
	tasks TaskRepository
	lists TaskListFinder
}

// NewTaskUsecase creates a new TaskUsecase with the given dependencies.
func NewTaskUsecase(tasks TaskRepository, lists TaskListFinder) *TaskUsecase {
	return &TaskUsecase{tasks: tasks, lists: lists}
}

// ListByTaskList returns the user's tasks in one list, newest first,
// optionally filtered by status, type and priority.
func (u *TaskUsecase) ListByTaskList(ctx context.Context, userID, taskListID uint, filter TaskFilter) ([]entity.Task, error) {
	filter.Status = strings.ToUpper(filter.Status)
	filter.TaskType = strings.ToUpper(filter.TaskType)
	filter.Priority = strings.ToLower(filter.Priority)
	return u.tasks.ListByTaskList(ctx, taskListID, userID, filter)
}

// Create stores a new task after verifying that the target list belongs to
// the user. List ownership failures surface as the list's not-found error.
func (u *TaskUsecase) Create(ctx context.Context, userID uint, in TaskInput) (*entity.Task, error) {
	task, err := buildTask(userID, in)
	if err != nil {
		return nil, err
	}
	if _, err := u.lists.FindByIDAndUser(ctx, in.TaskListID, userID); err != nil {
		return nil, err
	}
	if err := u.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Update overwrites the writable fields of one of the user's tasks. Moving
// the task to another list re-checks that the new list belongs to the user.
func (u *TaskUsecase) Update(ctx context.Context, userID, id uint, in TaskInput) (*entity.Task, error) {
	fresh, err := buildTask(userID, in)
	if err != nil {
		return nil, err
	}

	task, err := u.tasks.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if in.TaskListID != task.TaskListID {
		if _, err := u.lists.FindByIDAndUser(ctx, in.TaskListID, userID); err != nil {
			return nil, err
		}
	}

	fresh.ID = task.ID
	fresh.CreatedAt = task.CreatedAt
	if err := u.tasks.Save(ctx, fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

// UpdateStatus moves one of the user's tasks to a new workflow status.
func (u *TaskUsecase) UpdateStatus(ctx context.Context, userID, id uint, status string) (*entity.Task, error) {
	s := entity.Status(strings.ToUpper(status))
	if !s.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	task, err := u.tasks.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	task.MarkStatus(s)
	if err := u.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes one of the user's tasks.
func (u *TaskUsecase) Delete(ctx context.Context, userID, id uint) error {
	return u.tasks.Delete(ctx, id, userID)
}

// buildTask validates the input enums, applying the documented defaults for
// blank values, and assembles the entity.
func buildTask(userID uint, in TaskInput) (*entity.Task, error) {
	taskType := entity.TaskTypeOther
	if in.TaskType != "" {
		taskType = entity.TaskType(strings.ToUpper(in.TaskType))
	}
	status := entity.StatusTodo
	if in.Status != "" {
		status = entity.Status(strings.ToUpper(in.Status))
	}
	priority := entity.PriorityMedium
	if in.Priority != "" {
		priority = entity.Priority(strings.ToLower(in.Priority))
	}
	switch {
	case !taskType.Valid():
		return nil, domain.ErrInvalidTaskType
	case !status.Valid():
		return nil, domain.ErrInvalidStatus
	case !priority.Valid():
		return nil, domain.ErrInvalidPriority
	}

	task := &entity.Task{
		Name:       strings.TrimSpace(in.Name),
		TaskListID: in.TaskListID,
		UserID:     userID,
		Completed:  in.Completed,
		TaskType:   taskType,
		Priority:   priority,
		DueDate:    in.DueDate,
		StartDate:  in.StartDate,
		Notes:      strings.TrimSpace(in.Notes),
		Tags:       in.Tags,
	}
	task.MarkStatus(status)
	if in.Completed {
		task.Completed = true
	}
	return task, nil
}
