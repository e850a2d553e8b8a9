package impl

import (
	"context"
	"log/slog"

	"taskmanager/config"
	"taskmanager/internal/domain/entity"
	"taskmanager/internal/domain/lifecycle"
	"taskmanager/internal/domain/repository"
	"taskmanager/internal/domain/service"
	"taskmanager/internal/usecase"
	"taskmanager/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type adminSeeder struct {
	account        config.AdminAccountConfig
	txManager      repository.TransactionManager
	hasher         service.PasswordHasher
	passwordPolicy service.PasswordPolicy
	logger         *slog.Logger
}

// AdminSeederParams holds dependencies for the administrator bootstrapper, injected by Fx.
type AdminSeederParams struct {
	fx.In

	Config         *config.Config
	TxManager      repository.TransactionManager
	Hasher         service.PasswordHasher
	PasswordPolicy service.PasswordPolicy
	Logger         *slog.Logger
}

// NewAdminSeeder creates the bootstrapper for bootstrap.admin.
func NewAdminSeeder(params AdminSeederParams) usecase.AdminBootstrapper {
	var account config.AdminAccountConfig
	if params.Config.Bootstrap != nil {
		account = params.Config.Bootstrap.Admin
	}

	return &adminSeeder{
		account:        account,
		txManager:      params.TxManager,
		hasher:         params.Hasher,
		passwordPolicy: params.PasswordPolicy,
		logger:         params.Logger,
	}
}

// EnsureAdmin creates the configured administrator. Existing accounts are never modified.
func (s *adminSeeder) EnsureAdmin(ctx context.Context) (*entity.User, bool, error) {
	email := util.NormalizeEmail(s.account.Email)
	if email == "" {
		return nil, false, nil
	}

	if err := s.passwordPolicy.Validate(s.account.Password); err != nil {
		return nil, false, errors.Wrap(err, "bootstrap admin password rejected")
	}

	var created *entity.User
	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		_, err := userRepo.FindByEmail(ctx, email)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to look up bootstrap admin")
		}

		hash, err := s.hasher.Hash(s.account.Password)
		if err != nil {
			return errors.Wrap(err, "failed to hash bootstrap admin password")
		}

		user := &entity.User{Email: email, PasswordHash: hash, Role: entity.RoleAdmin}
		if err := userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return nil
			}

			return errors.Wrap(err, "failed to create bootstrap admin")
		}
		created = user

		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return created, created != nil, nil
}

// RegisterAdminBootstrap seeds the administrator when the application starts.
// It must be invoked after schema migration is registered.
func RegisterAdminBootstrap(lc fx.Lifecycle, seeder usecase.AdminBootstrapper, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			user, created, err := seeder.EnsureAdmin(ctx)
			if err != nil {
				return err
			}
			if created {
				logger.Info("Bootstrap administrator created", slog.Int64("userID", user.ID))
			}

			return nil
		},
	})
}
