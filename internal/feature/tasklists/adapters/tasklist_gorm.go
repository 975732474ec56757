// Package adapters provides the GORM-backed task list repository.
package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"task_backend/internal/feature/tasklists/domain"
	"task_backend/internal/feature/tasklists/domain/entity"
	"task_backend/internal/feature/tasklists/usecase"
	taskentity "task_backend/internal/feature/tasks/domain/entity"
)

// tasklistGorm implements usecase.TaskListRepository on top of GORM.
type tasklistGorm struct {
	db *gorm.DB
}

// NewTaskListRepository creates a GORM-backed task list repository.
func NewTaskListRepository(db *gorm.DB) usecase.TaskListRepository {
	return &tasklistGorm{db: db}
}

var _ usecase.TaskListRepository = (*tasklistGorm)(nil)

func (r *tasklistGorm) Create(ctx context.Context, list *entity.TaskList) error {
	if err := r.db.WithContext(ctx).Create(list).Error; err != nil {
		return fmt.Errorf("create task list: %w", err)
	}
	return nil
}

func (r *tasklistGorm) FindByIDAndUser(ctx context.Context, id, userID uint) (*entity.TaskList, error) {
	var list entity.TaskList
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&list).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrTaskListNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find task list: %w", err)
	}
	return &list, nil
}

func (r *tasklistGorm) ListByUser(ctx context.Context, userID uint, filter usecase.ListFilter) ([]entity.TaskList, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Type != "" {
		q = q.Where("list_type = ?", filter.Type)
	}
	if filter.Archived != nil {
		q = q.Where("is_archived = ?", *filter.Archived)
	}

	var lists []entity.TaskList
	if err := q.Order("is_pinned DESC, created_at DESC, id DESC").Find(&lists).Error; err != nil {
		return nil, fmt.Errorf("list task lists: %w", err)
	}
	if err := r.fillTaskCounts(ctx, userID, lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// fillTaskCounts attaches per-list task totals with a single grouped query.
func (r *tasklistGorm) fillTaskCounts(ctx context.Context, userID uint, lists []entity.TaskList) error {
	if len(lists) == 0 {
		return nil
	}

	var rows []struct {
		TaskListID uint
		Total      int64
		Completed  int64
	}
	err := r.db.WithContext(ctx).
		Model(&taskentity.Task{}).
		Select("task_list_id, COUNT(*) AS total, SUM(CASE WHEN completed THEN 1 ELSE 0 END) AS completed").
		Where("user_id = ?", userID).
		Group("task_list_id").
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("count tasks per list: %w", err)
	}

	counts := make(map[uint][2]int64, len(rows))
	for _, row := range rows {
		counts[row.TaskListID] = [2]int64{row.Total, row.Completed}
	}
	for i := range lists {
		c := counts[lists[i].ID]
		lists[i].TaskCount = c[0]
		lists[i].CompletedTaskCount = c[1]
	}
	return nil
}

func (r *tasklistGorm) Save(ctx context.Context, list *entity.TaskList) error {
	if err := r.db.WithContext(ctx).Save(list).Error; err != nil {
		return fmt.Errorf("save task list: %w", err)
	}
	return nil
}

// DeleteWithTasks removes the list and its tasks in one transaction so a
// failed task sweep never leaves an orphaned list behind.
func (r *tasklistGorm) DeleteWithTasks(ctx context.Context, id, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&entity.TaskList{})
		if res.Error != nil {
			return fmt.Errorf("delete task list: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrTaskListNotFound
		}
		if err := tx.Where("task_list_id = ? AND user_id = ?", id, userID).
			Delete(&taskentity.Task{}).Error; err != nil {
			return fmt.Errorf("delete tasks of list: %w", err)
		}
		return nil
	})
}
