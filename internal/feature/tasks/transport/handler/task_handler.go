// Package handler exposes the task endpoints over HTTP.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"task_backend/internal/api"
	tasklistdomain "task_backend/internal/feature/tasklists/domain"
	"task_backend/internal/feature/tasks/domain"
	"task_backend/internal/feature/tasks/domain/entity"
	"task_backend/internal/feature/tasks/transport/http/dto"
	"task_backend/internal/feature/tasks/usecase"
	jwtmw "task_backend/internal/platform/jwt"
)

// TaskUsecase is the business logic surface this handler depends on.
type TaskUsecase interface {
	ListByTaskList(ctx context.Context, userID, taskListID uint, filter usecase.TaskFilter) ([]entity.Task, error)
	Create(ctx context.Context, userID uint, in usecase.TaskInput) (*entity.Task, error)
	Update(ctx context.Context, userID, id uint, in usecase.TaskInput) (*entity.Task, error)
	UpdateStatus(ctx context.Context, userID, id uint, status string) (*entity.Task, error)
	Delete(ctx context.Context, userID, id uint) error
}

// TaskHandler handles the HTTP requests of the task feature.
type TaskHandler struct {
	tasks TaskUsecase
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks TaskUsecase) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, api.Fail("TASK_NOT_FOUND", err.Error()))
	case errors.Is(err, tasklistdomain.ErrTaskListNotFound):
		c.JSON(http.StatusNotFound, api.Fail("TASKLIST_NOT_FOUND", err.Error()))
	case errors.Is(err, domain.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, api.Fail("INVALID_STATUS", err.Error()))
	case errors.Is(err, domain.ErrInvalidTaskType):
		c.JSON(http.StatusBadRequest, api.Fail("INVALID_TASK_TYPE", err.Error()))
	case errors.Is(err, domain.ErrInvalidPriority):
		c.JSON(http.StatusBadRequest, api.Fail("INVALID_PRIORITY", err.Error()))
	default:
		slog.Error("task operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.Fail("SERVER_ERROR", "Internal server error"))
	}
}

func currentUserID(c *gin.Context) (uint, bool) {
	user, ok := jwtmw.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Fail("NO_TOKEN", "Authorization required"))
		return 0, false
	}
	return user.ID, true
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, api.Fail("TASK_NOT_FOUND", domain.ErrTaskNotFound.Error()))
		return 0, false
	}
	return uint(v), true
}

func taskInput(req dto.TaskRequest) usecase.TaskInput {
	return usecase.TaskInput{
		Name:       req.Name,
		TaskListID: req.TaskList,
		Completed:  req.Completed,
		TaskType:   req.TaskType,
		Status:     req.Status,
		Priority:   req.Priority,
		DueDate:    req.DueDate,
		StartDate:  req.StartDate,
		Notes:      req.Notes,
		Tags:       req.Tags,
	}
}

// ListByTaskList handles GET /api/tasks/list/:taskListId with optional
// status, taskType and priority filters.
func (h *TaskHandler) ListByTaskList(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	listID, err := strconv.ParseUint(c.Param("taskListId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, api.Fail("TASKLIST_NOT_FOUND", tasklistdomain.ErrTaskListNotFound.Error()))
		return
	}

	tasks, uerr := h.tasks.ListByTaskList(c.Request.Context(), userID, uint(listID), usecase.TaskFilter{
		Status:   c.Query("status"),
		TaskType: c.Query("taskType"),
		Priority: c.Query("priority"),
	})
	if uerr != nil {
		respondError(c, uerr)
		return
	}
	c.JSON(http.StatusOK, api.OK("", tasks))
}

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ValidationFail(api.FieldErrors(err)))
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), userID, taskInput(req))
	if err != nil {
		respondError(c, err)
		return
	}

	slog.Info("task created", "task_id", task.ID, "list_id", task.TaskListID, "user_id", userID)
	c.JSON(http.StatusCreated, api.OK("", task))
}

// Update handles PUT /api/tasks/:id.
func (h *TaskHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req dto.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ValidationFail(api.FieldErrors(err)))
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), userID, id, taskInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK("", task))
}

// UpdateStatus handles PATCH /api/tasks/:id/status.
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ValidationFail(api.FieldErrors(err)))
		return
	}

	task, err := h.tasks.UpdateStatus(c.Request.Context(), userID, id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK("", task))
}

// Delete handles DELETE /api/tasks/:id.
func (h *TaskHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	slog.Info("task deleted", "task_id", id, "user_id", userID)
	c.JSON(http.StatusOK, api.OK("Task deleted successfully", nil))
}
