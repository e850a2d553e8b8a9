package errors

import (
	"net/http"
	"testing"

	"taskmanager/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_WithMessageKeepsIdentity(t *testing.T) {
	err := ErrPasswordStrength.WithMessage("Password must contain at least one digit")

	assert.Equal(t, "Password must contain at least one digit", err.Message())
	assert.Equal(t, http.StatusBadRequest, err.HTTPCode())
	assert.True(t, errors.Is(err, ErrPasswordStrength))
	assert.False(t, errors.Is(err, ErrValidationFailed))
}

func TestBaseError_WrappedStillMatches(t *testing.T) {
	wrapped := ErrTaskNotFound.WrapMessage("lookup task 7")

	var appErr AppError
	require.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, "TASK_NOT_FOUND", appErr.ErrorCode())
	assert.True(t, errors.Is(wrapped, ErrTaskNotFound))
}

func TestValidationError_Fields(t *testing.T) {
	fields := map[string]string{"title": "title is required"}
	err := NewValidationError(fields)
	fields["title"] = "mutated"

	var fieldErr FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "title is required", fieldErr.Fields()["title"])
	assert.Equal(t, http.StatusBadRequest, fieldErr.HTTPCode())
	assert.True(t, errors.Is(err, ErrValidationFailed))
}

func TestDatabaseExecuteError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewDatabaseExecuteError(cause, "insert task")

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
	assert.Contains(t, err.Error(), "connection reset")
}
