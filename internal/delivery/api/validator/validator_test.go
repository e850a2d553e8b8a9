package validator

import (
	"testing"

	domainerrors "taskmanager/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email  string `json:"email" validate:"required,email,max=255"`
	Title  string `json:"title" validate:"required"`
	UserID int64  `json:"userId" validate:"gte=1"`
}

func TestCustomValidator_Valid(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{Email: "a@x.com", Title: "t", UserID: 1})
	assert.NoError(t, err)
}

func TestCustomValidator_FieldMessages(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{Email: "not-an-email", UserID: 0})
	require.Error(t, err)

	var fieldErr domainerrors.FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "VALIDATION_FAILED", fieldErr.ErrorCode())
	assert.Equal(t, map[string]string{
		"email":  "Email must be a valid email address",
		"title":  "Title is required",
		"userId": "UserId must be greater than or equal to 1",
	}, fieldErr.Fields())
}

func TestCustomValidator_RequiredBeforeFormat(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{Title: "t", UserID: 3})

	var fieldErr domainerrors.FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, map[string]string{"email": "Email is required"}, fieldErr.Fields())
}
