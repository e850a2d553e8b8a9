package impl

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	deliverycontext "taskmanager/internal/delivery/context"
	"taskmanager/internal/domain/entity"
	domainerrors "taskmanager/internal/domain/errors"
	"taskmanager/internal/domain/repository"
	"taskmanager/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type taskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// TaskServiceParams holds dependencies for TaskService, injected by Fx.
type TaskServiceParams struct {
	fx.In

	TaskRepo repository.TaskRepository
	UserRepo repository.UserRepository
	Logger   *slog.Logger
}

// NewTaskService creates a new task service instance
func NewTaskService(params TaskServiceParams) usecase.TaskUsecase {
	return &taskService{
		taskRepo: params.TaskRepo,
		userRepo: params.UserRepo,
		logger:   params.Logger,
	}
}

func (s *taskService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

// ListTasks retrieves the caller's tasks only
func (s *taskService) ListTasks(ctx context.Context, principal entity.Principal) ([]*entity.Task, error) {
	tasks, err := s.taskRepo.FindByUser(ctx, principal.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find tasks by user")
	}

	return tasks, nil
}

// GetTask retrieves a task after verifying ownership
func (s *taskService) GetTask(ctx context.Context, principal entity.Principal, taskID int64) (*entity.Task, error) {
	return s.findOwnedTask(ctx, principal, taskID)
}

// CreateTask creates a task for the caller. Naming another owner is refused before
// that owner's existence is checked.
func (s *taskService) CreateTask(ctx context.Context, principal entity.Principal, input *usecase.CreateTaskInput) (*entity.Task, error) {
	title, err := normalizeTitle(input.Title)
	if err != nil {
		return nil, err
	}
	if input.UserID <= 0 {
		return nil, domainerrors.NewValidationError(map[string]string{"userId": "userId must be a positive integer"})
	}

	if !principal.Owns(input.UserID) {
		return nil, domainerrors.ErrTaskAccessDenied.WithMessage("You can only create tasks for yourself")
	}

	exists, err := s.userRepo.ExistsByID(ctx, input.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check task owner")
	}
	if !exists {
		return nil, domainerrors.ErrTaskOwnerNotFound
	}

	task := &entity.Task{
		Title:  title,
		IsDone: input.IsDone,
		UserID: input.UserID,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Owner removed between the check and the insert.
			return nil, domainerrors.ErrTaskOwnerNotFound
		}

		return nil, errors.Wrap(err, "failed to create task")
	}

	s.log(ctx).Debug("Task created", slog.Int64("taskID", task.ID), slog.Int64("userID", task.UserID))

	return task, nil
}

// UpdateTask replaces title and completion flag. Concurrent updates are last-writer-wins.
func (s *taskService) UpdateTask(ctx context.Context, principal entity.Principal, taskID int64, input *usecase.UpdateTaskInput) (*entity.Task, error) {
	title, err := normalizeTitle(input.Title)
	if err != nil {
		return nil, err
	}

	task, err := s.findOwnedTask(ctx, principal, taskID)
	if err != nil {
		return nil, err
	}

	task.Title = title
	task.IsDone = input.IsDone

	if err := s.taskRepo.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, domainerrors.ErrTaskNotFound
		}

		return nil, errors.Wrap(err, "failed to update task")
	}

	return task, nil
}

// DeleteTask removes a task after verifying ownership
func (s *taskService) DeleteTask(ctx context.Context, principal entity.Principal, taskID int64) error {
	if _, err := s.findOwnedTask(ctx, principal, taskID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return domainerrors.ErrTaskNotFound
		}

		return errors.Wrap(err, "failed to delete task")
	}

	return nil
}

// findOwnedTask reports a missing task before an ownership violation.
func (s *taskService) findOwnedTask(ctx context.Context, principal entity.Principal, taskID int64) (*entity.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, domainerrors.ErrTaskNotFound
		}

		return nil, errors.Wrap(err, "failed to find task by ID")
	}

	if !principal.Owns(task.UserID) {
		s.log(ctx).Warn("Task access denied",
			slog.Int64("taskID", taskID),
			slog.Int64("userID", principal.UserID),
		)

		return nil, domainerrors.ErrTaskAccessDenied
	}

	return task, nil
}

func normalizeTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	switch {
	case title == "":
		return "", domainerrors.NewValidationError(map[string]string{"title": "Title is required"})
	case utf8.RuneCountInString(title) > entity.TaskTitleMaxLength:
		return "", domainerrors.NewValidationError(map[string]string{"title": "Title cannot exceed 200 characters"})
	}

	return title, nil
}
