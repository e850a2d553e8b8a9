// Package entity contains the core business objects of the project.
package entity

import "time"

// TaskTitleMaxLength is the maximum number of characters in a task title.
const TaskTitleMaxLength = 200

// Task is a to-do item owned by exactly one user.
type Task struct {
	ID        int64     // Auto-increment identifier assigned by storage.
	Title     string    // Trimmed, 1..TaskTitleMaxLength characters.
	IsDone    bool      // Completion flag.
	UserID    int64     // Owner of the task.
	CreatedAt time.Time // Timestamp of when this task was created.
	UpdatedAt time.Time // Timestamp of the last modification.
}
