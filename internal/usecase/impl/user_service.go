// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "taskmanager/internal/delivery/context"
	"taskmanager/internal/domain/entity"
	domainerrors "taskmanager/internal/domain/errors"
	"taskmanager/internal/domain/repository"
	"taskmanager/internal/domain/service"
	"taskmanager/internal/usecase"
	"taskmanager/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager      repository.TransactionManager
	userRepo       repository.UserRepository
	hasher         service.PasswordHasher
	passwordPolicy service.PasswordPolicy
	tokenService   service.TokenService
	logger         *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	UserRepo       repository.UserRepository
	Hasher         service.PasswordHasher
	PasswordPolicy service.PasswordPolicy
	TokenService   service.TokenService
	Logger         *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:      params.TxManager,
		userRepo:       params.UserRepo,
		hasher:         params.Hasher,
		passwordPolicy: params.PasswordPolicy,
		tokenService:   params.TokenService,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a regular account and signs the caller in.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	email := util.NormalizeEmail(input.Email)
	if email == "" {
		return nil, domainerrors.NewValidationError(map[string]string{"email": "Email is required"})
	}

	if err := srv.passwordPolicy.Validate(input.Password); err != nil {
		return nil, err
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	user := &entity.User{
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         entity.RoleUser,
	}

	// Check-then-insert runs in one transaction; the unique index still catches concurrent registrations.
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		_, err := userRepo.FindByEmail(ctx, email)
		if err == nil {
			return domainerrors.ErrUserAlreadyExists
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check existing email")
		}

		if err := userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return domainerrors.ErrUserAlreadyExists
			}

			return errors.Wrap(err, "failed to create user")
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserAlreadyExists) {
			srv.log(ctx).Info("Registration rejected, email already registered")

			return nil, err
		}
		srv.log(ctx).Error("Failed to execute registration transaction", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute user registration transaction")
	}

	srv.log(ctx).Info("User registered", slog.Int64("userID", user.ID))

	return srv.issueToken(ctx, user)
}

// Login verifies credentials. Unknown emails and wrong passwords are indistinguishable to the caller.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := util.NormalizeEmail(input.Email)

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Info("Login rejected, password mismatch", slog.Int64("userID", user.ID))

		return nil, domainerrors.ErrInvalidCredentials
	}

	return srv.issueToken(ctx, user)
}

func (srv *userService) issueToken(ctx context.Context, user *entity.User) (*usecase.AuthOutput, error) {
	token, expiresAt, err := srv.tokenService.GenerateToken(user)
	if err != nil {
		srv.log(ctx).Error("Failed to generate token", slog.Int64("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate token")
	}

	return &usecase.AuthOutput{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// ListUsers returns every account. The role is checked here as well as in the router.
func (srv *userService) ListUsers(ctx context.Context, principal entity.Principal) ([]*entity.User, error) {
	if !principal.IsAdmin() {
		return nil, domainerrors.ErrAdminRequired
	}

	users, err := srv.userRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return users, nil
}

// GetUser checks access before existence, so callers cannot probe other accounts.
func (srv *userService) GetUser(ctx context.Context, principal entity.Principal, userID int64) (*entity.User, error) {
	if !principal.CanAccess(userID) {
		return nil, domainerrors.ErrUserAccessDenied.WithMessage("You can only view your own profile")
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return user, nil
}

// DeleteUser removes the account together with its tasks.
func (srv *userService) DeleteUser(ctx context.Context, principal entity.Principal, userID int64) error {
	if !principal.CanAccess(userID) {
		return domainerrors.ErrUserAccessDenied.WithMessage("You can only delete your own account")
	}

	var removedTasks int64
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		removedTasks, err = repoFactory.NewTaskRepository().DeleteByUser(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to delete tasks of user")
		}

		if err := repoFactory.NewUserRepository().Delete(ctx, userID); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to delete user")
		}

		return nil
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("User deleted",
		slog.Int64("userID", userID),
		slog.Int64("deletedBy", principal.UserID),
		slog.Int64("removedTasks", removedTasks),
	)

	return nil
}
