package postgres

import (
	"context"
	"testing"

	"taskmanager/internal/domain/entity"
	"taskmanager/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	owner := createUser(t, users, "owner@x.com", entity.RoleUser)

	task := &entity.Task{Title: "Write report", UserID: owner.ID}
	require.NoError(t, repo.Create(ctx, task))
	require.NotZero(t, task.ID)

	found, err := repo.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write report", found.Title)
	assert.False(t, found.IsDone)
	assert.Equal(t, owner.ID, found.UserID)

	found.Title = "Write final report"
	found.IsDone = true
	require.NoError(t, repo.Update(ctx, found))

	updated, err := repo.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write final report", updated.Title)
	assert.True(t, updated.IsDone)

	// Back to not done: zero values must be written too
	updated.IsDone = false
	require.NoError(t, repo.Update(ctx, updated))
	reverted, err := repo.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, reverted.IsDone)

	require.NoError(t, repo.Delete(ctx, task.ID))

	_, err = repo.FindByID(ctx, task.ID)
	assert.True(t, errors.Is(err, repository.ErrTaskNotFound))

	err = repo.Delete(ctx, task.ID)
	assert.True(t, errors.Is(err, repository.ErrTaskNotFound))

	err = repo.Update(ctx, &entity.Task{ID: task.ID, Title: "gone"})
	assert.True(t, errors.Is(err, repository.ErrTaskNotFound))
}

func TestTaskRepository_FindByUserIsScoped(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	alice := createUser(t, users, "alice@x.com", entity.RoleUser)
	bob := createUser(t, users, "bob@x.com", entity.RoleUser)

	require.NoError(t, repo.Create(ctx, &entity.Task{Title: "a1", UserID: alice.ID}))
	require.NoError(t, repo.Create(ctx, &entity.Task{Title: "b1", UserID: bob.ID}))
	require.NoError(t, repo.Create(ctx, &entity.Task{Title: "a2", UserID: alice.ID}))

	tasks, err := repo.FindByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "a1", tasks[0].Title)
	assert.Equal(t, "a2", tasks[1].Title)

	removed, err := repo.DeleteByUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)

	tasks, err = repo.FindByUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestTaskRepository_CreateWithUnknownOwner(t *testing.T) {
	repo := NewTaskRepository(newTestDB(t))

	err := repo.Create(context.Background(), &entity.Task{Title: "orphan", UserID: 4242})
	assert.True(t, errors.Is(err, repository.ErrUserNotFound))
}
