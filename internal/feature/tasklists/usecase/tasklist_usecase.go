// Package usecase implements the business logic for task list operations.
package usecase

import (
	"context"
	"strings"

	"task_backend/internal/feature/tasklists/domain"
	"task_backend/internal/feature/tasklists/domain/entity"
)

// ListFilter narrows a user's task list query.
type ListFilter struct {
	// Type filters on the list type when non-empty. Matching is
	// case-insensitive, the stored value is always upper case.
	Type string
	// Archived filters on the archive flag when non-nil.
	Archived *bool
}

// TaskListRepository abstracts the persistence layer for task lists.
// Interfaces are defined by the consumer (usecase), not the provider (adapters).
type TaskListRepository interface {
	Create(ctx context.Context, list *entity.TaskList) error
	FindByIDAndUser(ctx context.Context, id, userID uint) (*entity.TaskList, error)
	ListByUser(ctx context.Context, userID uint, filter ListFilter) ([]entity.TaskList, error)
	Save(ctx context.Context, list *entity.TaskList) error
	// DeleteWithTasks removes the list and every task belonging to it.
	DeleteWithTasks(ctx context.Context, id, userID uint) error
}

// CreateListInput carries the fields a user may set when creating a list.
type CreateListInput struct {
	Name        string
	ListType    string
	Color       string
	Description string
	CustomIcon  string
}

// UpdateListInput carries the fields a user may change on an existing list.
// Nil pointers leave the corresponding flag untouched.
type UpdateListInput struct {
	Name        string
	ListType    string
	Color       string
	Description string
	IsArchived  *bool
	IsPinned    *bool
}

// TaskListUsecase provides business logic for task list operations.
type TaskListUsecase struct {
	lists TaskListRepository
}

// NewTaskListUsecase creates a new TaskListUsecase with the given repository.
func NewTaskListUsecase(lists TaskListRepository) *TaskListUsecase {
	return &TaskListUsecase{lists: lists}
}

// ListTypes returns the catalog of selectable list types.
func (u *TaskListUsecase) ListTypes() []entity.ListTypeInfo {
	return entity.ListTypes()
}

// List returns the user's task lists, optionally filtered by type and
// archive state. Results are ordered pinned first, newest first.
func (u *TaskListUsecase) List(ctx context.Context, userID uint, filter ListFilter) ([]entity.TaskList, error) {
	if filter.Type != "" {
		t := entity.ListType(strings.ToUpper(filter.Type))
		if !t.Valid() {
			return nil, domain.ErrInvalidListType
		}
		filter.Type = string(t)
	}
	return u.lists.ListByUser(ctx, userID, filter)
}

// Create stores a new task list for the user. Icon and color default from
// the list type when left blank.
func (u *TaskListUsecase) Create(ctx context.Context, userID uint, in CreateListInput) (*entity.TaskList, error) {
	listType := entity.ListType(strings.ToUpper(in.ListType))
	if !listType.Valid() {
		return nil, domain.ErrInvalidListType
	}

	list := &entity.TaskList{
		Name:        strings.TrimSpace(in.Name),
		ListType:    listType,
		Color:       in.Color,
		Description: strings.TrimSpace(in.Description),
		CustomIcon:  strings.TrimSpace(in.CustomIcon),
		UserID:      userID,
	}
	list.ApplyDefaults()

	if err := u.lists.Create(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Update overwrites the mutable fields of one of the user's lists.
func (u *TaskListUsecase) Update(ctx context.Context, userID, id uint, in UpdateListInput) (*entity.TaskList, error) {
	listType := entity.ListType(strings.ToUpper(in.ListType))
	if !listType.Valid() {
		return nil, domain.ErrInvalidListType
	}

	list, err := u.lists.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	list.Name = strings.TrimSpace(in.Name)
	list.ListType = listType
	list.Description = strings.TrimSpace(in.Description)
	if in.Color != "" {
		list.Color = in.Color
	}
	if in.IsArchived != nil {
		list.IsArchived = *in.IsArchived
	}
	if in.IsPinned != nil {
		list.IsPinned = *in.IsPinned
	}

	if err := u.lists.Save(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// TogglePin flips the pinned flag of one of the user's lists.
func (u *TaskListUsecase) TogglePin(ctx context.Context, userID, id uint) (*entity.TaskList, error) {
	return u.toggle(ctx, userID, id, func(l *entity.TaskList) { l.IsPinned = !l.IsPinned })
}

// ToggleArchive flips the archived flag of one of the user's lists.
func (u *TaskListUsecase) ToggleArchive(ctx context.Context, userID, id uint) (*entity.TaskList, error) {
	return u.toggle(ctx, userID, id, func(l *entity.TaskList) { l.IsArchived = !l.IsArchived })
}

func (u *TaskListUsecase) toggle(ctx context.Context, userID, id uint, mutate func(*entity.TaskList)) (*entity.TaskList, error) {
	list, err := u.lists.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	mutate(list)
	if err := u.lists.Save(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Delete removes one of the user's lists together with all of its tasks.
func (u *TaskListUsecase) Delete(ctx context.Context, userID, id uint) error {
	return u.lists.DeleteWithTasks(ctx, id, userID)
}
