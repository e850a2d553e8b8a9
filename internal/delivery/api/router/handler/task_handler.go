package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"taskmanager/internal/delivery/api/middleware"
	"taskmanager/internal/delivery/api/response"
	domainerrors "taskmanager/internal/domain/errors"
	"taskmanager/internal/usecase"
	"taskmanager/internal/util"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// TaskHandlerParams holds dependencies for TaskHandler, injected by Fx.
type TaskHandlerParams struct {
	fx.In

	TaskUC usecase.TaskUsecase
	Logger *slog.Logger
}

// TaskHandler holds dependencies for task-related handlers
type TaskHandler struct {
	taskUC usecase.TaskUsecase
	logger *slog.Logger
}

// NewTaskHandler is the constructor for TaskHandler
func NewTaskHandler(params TaskHandlerParams) *TaskHandler {
	return &TaskHandler{
		taskUC: params.TaskUC,
		logger: params.Logger,
	}
}

// CreateTaskRequest represents the request body for creating a task.
// Title length is checked after trimming by the use case.
type CreateTaskRequest struct {
	Title  string `json:"title" validate:"required"`
	IsDone bool   `json:"isDone"`
	UserID int64  `json:"userId" validate:"gte=1"`
}

// UpdateTaskRequest represents the request body for replacing a task
type UpdateTaskRequest struct {
	Title  string `json:"title" validate:"required"`
	IsDone bool   `json:"isDone"`
}

// ListTasks handles listing the caller's tasks
func (h *TaskHandler) ListTasks(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrMissingToken)
	}

	tasks, err := h.taskUC.ListTasks(c.Request().Context(), principal)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newTaskResponses(tasks))
}

// GetTask handles reading a single task
func (h *TaskHandler) GetTask(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrMissingToken)
	}

	taskID, ok := util.ParseID(c.Param("id"))
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrInvalidID)
	}

	task, err := h.taskUC.GetTask(c.Request().Context(), principal, taskID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newTaskResponse(task))
}

// CreateTask handles task creation
func (h *TaskHandler) CreateTask(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrMissingToken)
	}

	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid task input")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	task, err := h.taskUC.CreateTask(c.Request().Context(), principal, &usecase.CreateTaskInput{
		Title:  req.Title,
		IsDone: req.IsDone,
		UserID: req.UserID,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, "/tasks/"+strconv.FormatInt(task.ID, 10), newTaskResponse(task))
}

// UpdateTask handles replacing a task's title and completion flag
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrMissingToken)
	}

	taskID, ok := util.ParseID(c.Param("id"))
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrInvalidID)
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid task input")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	task, err := h.taskUC.UpdateTask(c.Request().Context(), principal, taskID, &usecase.UpdateTaskInput{
		Title:  req.Title,
		IsDone: req.IsDone,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newTaskResponse(task))
}

// DeleteTask handles task removal
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrMissingToken)
	}

	taskID, ok := util.ParseID(c.Param("id"))
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrInvalidID)
	}

	if err := h.taskUC.DeleteTask(c.Request().Context(), principal, taskID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.NoContent(c)
}
