// Package adapters provides the GORM-backed task repository.
package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"task_backend/internal/feature/tasks/domain"
	"task_backend/internal/feature/tasks/domain/entity"
	"task_backend/internal/feature/tasks/usecase"
)

// taskGorm implements usecase.TaskRepository on top of GORM.
type taskGorm struct {
	db *gorm.DB
}

// NewTaskRepository creates a GORM-backed task repository.
func NewTaskRepository(db *gorm.DB) usecase.TaskRepository {
	return &taskGorm{db: db}
}

var _ usecase.TaskRepository = (*taskGorm)(nil)

func (r *taskGorm) Create(ctx context.Context, task *entity.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *taskGorm) FindByIDAndUser(ctx context.Context, id, userID uint) (*entity.Task, error) {
	var task entity.Task
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &task, nil
}

func (r *taskGorm) ListByTaskList(ctx context.Context, taskListID, userID uint, filter usecase.TaskFilter) ([]entity.Task, error) {
	q := r.db.WithContext(ctx).Where("task_list_id = ? AND user_id = ?", taskListID, userID)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.TaskType != "" {
		q = q.Where("task_type = ?", filter.TaskType)
	}
	if filter.Priority != "" {
		q = q.Where("priority = ?", filter.Priority)
	}

	var tasks []entity.Task
	if err := q.Order("created_at DESC, id DESC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (r *taskGorm) Save(ctx context.Context, task *entity.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

func (r *taskGorm) Delete(ctx context.Context, id, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entity.Task{})
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
