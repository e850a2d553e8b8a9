// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"taskmanager/internal/domain/entity"
	"taskmanager/internal/errors"
)

// ErrTaskNotFound is returned when a task is not found.
var ErrTaskNotFound = errors.New("task not found")

// TaskRepository defines the interface for task-related database operations.
type TaskRepository interface {
	// FindByID retrieves a task by its ID.
	FindByID(ctx context.Context, id int64) (*entity.Task, error)

	// FindByUser retrieves all tasks owned by a user, ordered by ID.
	FindByUser(ctx context.Context, userID int64) ([]*entity.Task, error)

	// Create persists a new task and assigns its ID.
	Create(ctx context.Context, task *entity.Task) error

	// Update replaces the title and completion flag of an existing task.
	Update(ctx context.Context, task *entity.Task) error

	// Delete removes a task by ID.
	Delete(ctx context.Context, id int64) error

	// DeleteByUser removes every task owned by a user and returns the number removed.
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
}
