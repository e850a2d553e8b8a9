package usecase

import (
	"context"

	"taskmanager/internal/domain/entity"
)

// CreateTaskInput defines the data required to create a task.
type CreateTaskInput struct {
	Title  string
	IsDone bool
	UserID int64
}

// UpdateTaskInput defines the replaceable fields of a task.
type UpdateTaskInput struct {
	Title  string
	IsDone bool
}

// TaskUsecase defines the interface for task management use cases.
// Every operation is restricted to the principal's own tasks, administrators included.
type TaskUsecase interface {
	// ListTasks retrieves the principal's tasks.
	ListTasks(ctx context.Context, principal entity.Principal) ([]*entity.Task, error)

	// GetTask retrieves a task owned by the principal.
	GetTask(ctx context.Context, principal entity.Principal, taskID int64) (*entity.Task, error)

	// CreateTask creates a task for input.UserID, which must be the principal.
	CreateTask(ctx context.Context, principal entity.Principal, input *CreateTaskInput) (*entity.Task, error)

	// UpdateTask replaces the title and completion flag of a task owned by the principal.
	UpdateTask(ctx context.Context, principal entity.Principal, taskID int64, input *UpdateTaskInput) (*entity.Task, error)

	// DeleteTask removes a task owned by the principal.
	DeleteTask(ctx context.Context, principal entity.Principal, taskID int64) error
}
