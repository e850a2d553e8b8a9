package handler

import (
	"time"

	"taskmanager/internal/domain/entity"
)

// AuthResponse is returned by registration and login.
type AuthResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// UserResponse is the public view of an account. The password hash is never included.
type UserResponse struct {
	ID        int64           `json:"id"`
	Email     string          `json:"email"`
	Role      entity.Role     `json:"role"`
	CreatedAt time.Time       `json:"createdAt"`
	Tasks     []*TaskResponse `json:"tasks"`
}

// TaskResponse is the public view of a task.
type TaskResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	IsDone    bool      `json:"isDone"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func newTaskResponse(task *entity.Task) *TaskResponse {
	return &TaskResponse{
		ID:        task.ID,
		Title:     task.Title,
		IsDone:    task.IsDone,
		UserID:    task.UserID,
		CreatedAt: task.CreatedAt,
	}
}

// newTaskResponses never returns nil so empty lists encode as [].
func newTaskResponses(tasks []*entity.Task) []*TaskResponse {
	responses := make([]*TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, newTaskResponse(task))
	}

	return responses
}

func newUserResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		Tasks:     newTaskResponses(user.Tasks),
	}
}

func newUserResponses(users []*entity.User) []*UserResponse {
	responses := make([]*UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, newUserResponse(user))
	}

	return responses
}
