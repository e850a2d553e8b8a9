package usecase

import (
	"context"

	"taskmanager/internal/domain/entity"
)

// AdminBootstrapper seeds the administrator account configured for the deployment.
type AdminBootstrapper interface {
	// EnsureAdmin creates the configured administrator when no account uses its email.
	// It returns nil, false when nothing is configured or the account already exists.
	EnsureAdmin(ctx context.Context) (*entity.User, bool, error)
}
