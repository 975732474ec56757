// Package handler exposes the task list endpoints over HTTP.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"task_backend/internal/api"
	"task_backend/internal/feature/tasklists/domain"
	"task_backend/internal/feature/tasklists/domain/entity"
	"task_backend/internal/feature/tasklists/transport/http/dto"
	"task_backend/internal/feature/tasklists/usecase"
	jwtmw "task_backend/internal/platform/jwt"
)

// TaskListUsecase is the business logic surface this handler depends on.
type TaskListUsecase interface {
	ListTypes() []entity.ListTypeInfo
	List(ctx context.Context, userID uint, filter usecase.ListFilter) ([]entity.TaskList, error)
	Create(ctx context.Context, userID uint, in usecase.CreateListInput) (*entity.TaskList, error)
	Update(ctx context.Context, userID, id uint, in usecase.UpdateListInput) (*entity.TaskList, error)
	TogglePin(ctx context.Context, userID, id uint) (*entity.TaskList, error)
	ToggleArchive(ctx context.Context, userID, id uint) (*entity.TaskList, error)
	Delete(ctx context.Context, userID, id uint) error
}

// TaskListHandler handles the HTTP requests of the task list feature.
type TaskListHandler struct {
	lists TaskListUsecase
}

// NewTaskListHandler creates a new TaskListHandler.
func NewTaskListHandler(lists TaskListUsecase) *TaskListHandler {
	return &TaskListHandler{lists: lists}
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrTaskListNotFound):
		c.JSON(http.StatusNotFound, api.Fail("TASKLIST_NOT_FOUND", err.Error()))
	case errors.Is(err, domain.ErrInvalidListType):
		c.JSON(http.StatusBadRequest, api.Fail("INVALID_LIST_TYPE", err.Error()))
	default:
		slog.Error("task list operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.Fail("SERVER_ERROR", "Internal server error"))
	}
}

// currentUserID resolves the authenticated user set by the auth middleware.
func currentUserID(c *gin.Context) (uint, bool) {
	user, ok := jwtmw.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Fail("NO_TOKEN", "Authorization required"))
		return 0, false
	}
	return user.ID, true
}

func listIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, api.Fail("TASKLIST_NOT_FOUND", domain.ErrTaskListNotFound.Error()))
		return 0, false
	}
	return uint(id), true
}

// ListTypes handles GET /api/tasklists/types.
func (h *TaskListHandler) ListTypes(c *gin.Context) {
	c.JSON(http.StatusOK, api.OK("", h.lists.ListTypes()))
}

// List handles GET /api/tasklists with optional type and archived filters.
func (h *TaskListHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	filter := usecase.ListFilter{Type: c.Query("type")}
	if v := c.Query("archived"); v != "" {
		archived := v == "true"
		filter.Archived = &archived
	}

	lists, err := h.lists.List(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK("", lists))
}

// Create handles POST /api/tasklists.
func (h *TaskListHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTaskListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ValidationFail(api.FieldErrors(err)))
		return
	}

	list, err := h.lists.Create(c.Request.Context(), userID, usecase.CreateListInput{
		Name:        req.Name,
		ListType:    req.ListType,
		Color:       req.Color,
		Description: req.Description,
		CustomIcon:  req.CustomIcon,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	slog.Info("task list created", "list_id", list.ID, "user_id", userID)
	c.JSON(http.StatusCreated, api.OK("", list))
}

// Update handles PUT /api/tasklists/:id.
func (h *TaskListHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := listIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ValidationFail(api.FieldErrors(err)))
		return
	}

	list, err := h.lists.Update(c.Request.Context(), userID, id, usecase.UpdateListInput{
		Name:        req.Name,
		ListType:    req.ListType,
		Color:       req.Color,
		Description: req.Description,
		IsArchived:  req.IsArchived,
		IsPinned:    req.IsPinned,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK("", list))
}

// TogglePin handles PATCH /api/tasklists/:id/pin.
func (h *TaskListHandler) TogglePin(c *gin.Context) {
	h.toggle(c, h.lists.TogglePin)
}

// ToggleArchive handles PATCH /api/tasklists/:id/archive.
func (h *TaskListHandler) ToggleArchive(c *gin.Context) {
	h.toggle(c, h.lists.ToggleArchive)
}

func (h *TaskListHandler) toggle(c *gin.Context, op func(ctx context.Context, userID, id uint) (*entity.TaskList, error)) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := listIDParam(c)
	if !ok {
		return
	}

	list, err := op(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK("", list))
}

// Delete handles DELETE /api/tasklists/:id. Tasks in the list go with it.
func (h *TaskListHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := listIDParam(c)
	if !ok {
		return
	}

	if err := h.lists.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	slog.Info("task list deleted", "list_id", id, "user_id", userID)
	c.JSON(http.StatusOK, api.OK("Task list and associated tasks deleted successfully", nil))
}
