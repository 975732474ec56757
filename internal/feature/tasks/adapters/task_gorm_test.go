package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"task_backend/internal/feature/tasks/domain"
	"task_backend/internal/feature/tasks/domain/entity"
	"task_backend/internal/feature/tasks/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.Task{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func seedTask(t *testing.T, repo *taskGorm, listID, userID uint, mutate func(*entity.Task)) *entity.Task {
	t.Helper()
	task := &entity.Task{
		Name: "task", TaskListID: listID, UserID: userID,
		TaskType: entity.TaskTypeOther, Status: entity.StatusTodo, Priority: entity.PriorityMedium,
	}
	if mutate != nil {
		mutate(task)
	}
	require.NoError(t, repo.Create(context.Background(), task))
	return task
}

func TestTaskGorm_Create(t *testing.T) {
	repo := &taskGorm{db: setupTestDB(t)}

	due := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	task := &entity.Task{
		Name: "Ship release", TaskListID: 3, UserID: 1,
		TaskType: entity.TaskTypeFeature, Status: entity.StatusInProgress, Priority: entity.PriorityHigh,
		DueDate: &due, Tags: []string{"release", "q3"},
	}
	require.NoError(t, repo.Create(context.Background(), task))
	assert.NotZero(t, task.ID)

	got, err := repo.FindByIDAndUser(context.Background(), task.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"release", "q3"}, got.Tags, "tags survive a round trip")
	require.NotNil(t, got.DueDate)
	assert.True(t, got.DueDate.Equal(due))
}

func TestTaskGorm_FindByIDAndUser(t *testing.T) {
	repo := &taskGorm{db: setupTestDB(t)}
	task := seedTask(t, repo, 3, 1, nil)

	t.Run("another user gets not found", func(t *testing.T) {
		_, err := repo.FindByIDAndUser(context.Background(), task.ID, 2)
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})

	t.Run("missing id gets not found", func(t *testing.T) {
		_, err := repo.FindByIDAndUser(context.Background(), 9999, 1)
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})
}

func TestTaskGorm_ListByTaskList(t *testing.T) {
	repo := &taskGorm{db: setupTestDB(t)}
	seedTask(t, repo, 3, 1, func(task *entity.Task) {
		task.Name = "a"
		task.Status = entity.StatusDone
		task.Completed = true
		task.TaskType = entity.TaskTypeBugFix
	})
	seedTask(t, repo, 3, 1, func(task *entity.Task) {
		task.Name = "b"
		task.Priority = entity.PriorityHigh
	})
	seedTask(t, repo, 4, 1, func(task *entity.Task) { task.Name = "other list" })
	seedTask(t, repo, 3, 2, func(task *entity.Task) { task.Name = "other user" })

	t.Run("scopes to list and user, newest first", func(t *testing.T) {
		tasks, err := repo.ListByTaskList(context.Background(), 3, 1, usecase.TaskFilter{})
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, "b", tasks[0].Name)
		assert.Equal(t, "a", tasks[1].Name)
	})

	t.Run("status filter", func(t *testing.T) {
		tasks, err := repo.ListByTaskList(context.Background(), 3, 1, usecase.TaskFilter{Status: "DONE"})
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "a", tasks[0].Name)
	})

	t.Run("type filter", func(t *testing.T) {
		tasks, err := repo.ListByTaskList(context.Background(), 3, 1, usecase.TaskFilter{TaskType: "BUG_FIX"})
		require.NoError(t, err)
		require.Len(t, tasks, 1)
	})

	t.Run("priority filter", func(t *testing.T) {
		tasks, err := repo.ListByTaskList(context.Background(), 3, 1, usecase.TaskFilter{Priority: "high"})
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "b", tasks[0].Name)
	})

	t.Run("combined filters", func(t *testing.T) {
		tasks, err := repo.ListByTaskList(context.Background(), 3, 1, usecase.TaskFilter{Status: "DONE", Priority: "high"})
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})
}

func TestTaskGorm_Save(t *testing.T) {
	repo := &taskGorm{db: setupTestDB(t)}
	task := seedTask(t, repo, 3, 1, nil)

	task.MarkStatus(entity.StatusDone)
	task.Notes = "wrapped up"
	require.NoError(t, repo.Save(context.Background(), task))

	got, err := repo.FindByIDAndUser(context.Background(), task.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDone, got.Status)
	assert.True(t, got.Completed)
	assert.Equal(t, "wrapped up", got.Notes)
}

func TestTaskGorm_Delete(t *testing.T) {
	t.Run("removes the task", func(t *testing.T) {
		repo := &taskGorm{db: setupTestDB(t)}
		task := seedTask(t, repo, 3, 1, nil)

		require.NoError(t, repo.Delete(context.Background(), task.ID, 1))

		_, err := repo.FindByIDAndUser(context.Background(), task.ID, 1)
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})

	t.Run("another user's task is untouched", func(t *testing.T) {
		repo := &taskGorm{db: setupTestDB(t)}
		task := seedTask(t, repo, 3, 1, nil)

		err := repo.Delete(context.Background(), task.ID, 2)
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)

		_, err = repo.FindByIDAndUser(context.Background(), task.ID, 1)
		assert.NoError(t, err)
	})
}
