// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"taskmanager/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Email    string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// AuthOutput is returned by registration and login.
type AuthOutput struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	// Register creates an account with role User and issues a token for it.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Login verifies credentials and issues a token.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// ListUsers returns every account with its tasks. Administrators only.
	ListUsers(ctx context.Context, principal entity.Principal) ([]*entity.User, error)

	// GetUser returns an account with its tasks, visible to its owner and administrators.
	GetUser(ctx context.Context, principal entity.Principal, userID int64) (*entity.User, error)

	// DeleteUser removes an account and its tasks, allowed for its owner and administrators.
	DeleteUser(ctx context.Context, principal entity.Principal, userID int64) error
}
