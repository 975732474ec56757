package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"task_backend/internal/feature/tasklists/domain"
	"task_backend/internal/feature/tasklists/domain/entity"
	"task_backend/internal/feature/tasklists/usecase"
	taskentity "task_backend/internal/feature/tasks/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.TaskList{}, &taskentity.Task{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func seedList(t *testing.T, repo *tasklistGorm, userID uint, name string, mutate func(*entity.TaskList)) *entity.TaskList {
	t.Helper()
	l := &entity.TaskList{Name: name, ListType: entity.ListTypePersonal, UserID: userID}
	l.ApplyDefaults()
	if mutate != nil {
		mutate(l)
	}
	require.NoError(t, repo.Create(context.Background(), l))
	return l
}

func seedTask(t *testing.T, db *gorm.DB, listID, userID uint, completed bool) {
	t.Helper()
	task := &taskentity.Task{
		Name: "t", TaskListID: listID, UserID: userID, Completed: completed,
		TaskType: taskentity.TaskTypeOther, Status: taskentity.StatusTodo, Priority: taskentity.PriorityMedium,
	}
	require.NoError(t, db.Create(task).Error)
}

func TestTasklistGorm_FindByIDAndUser(t *testing.T) {
	repo := &tasklistGorm{db: setupTestDB(t)}
	list := seedList(t, repo, 1, "Personal", nil)

	t.Run("owner finds the list", func(t *testing.T) {
		got, err := repo.FindByIDAndUser(context.Background(), list.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, list.ID, got.ID)
	})

	t.Run("another user gets not found", func(t *testing.T) {
		_, err := repo.FindByIDAndUser(context.Background(), list.ID, 2)
		assert.ErrorIs(t, err, domain.ErrTaskListNotFound)
	})

	t.Run("missing id gets not found", func(t *testing.T) {
		_, err := repo.FindByIDAndUser(context.Background(), 9999, 1)
		assert.ErrorIs(t, err, domain.ErrTaskListNotFound)
	})
}

func TestTasklistGorm_ListByUser(t *testing.T) {
	repo := &tasklistGorm{db: setupTestDB(t)}
	work := seedList(t, repo, 1, "Work", func(l *entity.TaskList) { l.ListType = entity.ListTypeWork })
	pinned := seedList(t, repo, 1, "Pinned", func(l *entity.TaskList) { l.IsPinned = true })
	archived := seedList(t, repo, 1, "Old", func(l *entity.TaskList) { l.IsArchived = true })
	seedList(t, repo, 2, "Other user", nil)

	t.Run("returns only the user's lists, pinned first", func(t *testing.T) {
		lists, err := repo.ListByUser(context.Background(), 1, usecase.ListFilter{})
		require.NoError(t, err)
		require.Len(t, lists, 3)
		assert.Equal(t, pinned.ID, lists[0].ID, "pinned list sorts first")
	})

	t.Run("type filter", func(t *testing.T) {
		lists, err := repo.ListByUser(context.Background(), 1, usecase.ListFilter{Type: "WORK"})
		require.NoError(t, err)
		require.Len(t, lists, 1)
		assert.Equal(t, work.ID, lists[0].ID)
	})

	t.Run("archived filter", func(t *testing.T) {
		archivedOnly := true
		lists, err := repo.ListByUser(context.Background(), 1, usecase.ListFilter{Archived: &archivedOnly})
		require.NoError(t, err)
		require.Len(t, lists, 1)
		assert.Equal(t, archived.ID, lists[0].ID)

		active := false
		lists, err = repo.ListByUser(context.Background(), 1, usecase.ListFilter{Archived: &active})
		require.NoError(t, err)
		assert.Len(t, lists, 2)
	})

	t.Run("task counts are attached per list", func(t *testing.T) {
		seedTask(t, repo.db, work.ID, 1, false)
		seedTask(t, repo.db, work.ID, 1, true)
		seedTask(t, repo.db, work.ID, 1, true)

		lists, err := repo.ListByUser(context.Background(), 1, usecase.ListFilter{Type: "WORK"})
		require.NoError(t, err)
		require.Len(t, lists, 1)
		assert.EqualValues(t, 3, lists[0].TaskCount)
		assert.EqualValues(t, 2, lists[0].CompletedTaskCount)
	})
}

func TestTasklistGorm_Save(t *testing.T) {
	repo := &tasklistGorm{db: setupTestDB(t)}
	list := seedList(t, repo, 1, "Personal", nil)

	list.Name = "Renamed"
	list.IsPinned = true
	require.NoError(t, repo.Save(context.Background(), list))

	got, err := repo.FindByIDAndUser(context.Background(), list.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.True(t, got.IsPinned)
}

func TestTasklistGorm_DeleteWithTasks(t *testing.T) {
	t.Run("removes the list and its tasks", func(t *testing.T) {
		repo := &tasklistGorm{db: setupTestDB(t)}
		list := seedList(t, repo, 1, "Personal", nil)
		keep := seedList(t, repo, 1, "Keep", nil)
		seedTask(t, repo.db, list.ID, 1, false)
		seedTask(t, repo.db, list.ID, 1, true)
		seedTask(t, repo.db, keep.ID, 1, false)

		require.NoError(t, repo.DeleteWithTasks(context.Background(), list.ID, 1))

		_, err := repo.FindByIDAndUser(context.Background(), list.ID, 1)
		assert.ErrorIs(t, err, domain.ErrTaskListNotFound)

		var remaining int64
		require.NoError(t, repo.db.Model(&taskentity.Task{}).Count(&remaining).Error)
		assert.EqualValues(t, 1, remaining, "tasks of other lists survive")
	})

	t.Run("another user's list is untouched", func(t *testing.T) {
		repo := &tasklistGorm{db: setupTestDB(t)}
		list := seedList(t, repo, 1, "Personal", nil)

		err := repo.DeleteWithTasks(context.Background(), list.ID, 2)
		assert.ErrorIs(t, err, domain.ErrTaskListNotFound)

		_, err = repo.FindByIDAndUser(context.Background(), list.ID, 1)
		assert.NoError(t, err)
	})
}
