package auth

import (
	"strings"
	"testing"

	"taskmanager/config"
	domainerrors "taskmanager/internal/domain/errors"
	"taskmanager/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordPolicy_Validate(t *testing.T) {
	t.Parallel()

	policy := NewPasswordPolicy(&config.Config{})

	tests := []struct {
		name     string
		password string
		want     string
	}{
		{name: "empty", password: "", want: "Password is required"},
		{name: "whitespace only", password: "    \t ", want: "Password is required"},
		{name: "too short", password: "Ab1!", want: "Password must be at least 8 characters"},
		{name: "too long", password: "Ab1!" + strings.Repeat("x", 125), want: "Password cannot exceed 128 characters"},
		{name: "no uppercase", password: "password1!", want: "Password must contain at least one uppercase letter"},
		{name: "no lowercase", password: "PASSWORD1!", want: "Password must contain at least one lowercase letter"},
		{name: "no digit", password: "Password!!", want: "Password must contain at least one digit"},
		{name: "no special", password: "Password12", want: "Password must contain at least one special character"},
		{name: "minimum length compliant", password: "Passwo1!", want: ""},
		{name: "maximum length compliant", password: "Ab1!" + strings.Repeat("x", 124), want: ""},
		{name: "space counts as special", password: "Pass word1", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := policy.Validate(tt.password)
			if tt.want == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerrors.ErrPasswordStrength))

			var appErr domainerrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.want, appErr.Message())
			assert.Equal(t, 400, appErr.HTTPCode())
		})
	}
}

func TestPasswordPolicy_CountsCharactersNotBytes(t *testing.T) {
	t.Parallel()

	policy := NewPasswordPolicy(&config.Config{})

	// 7 characters, more than 8 bytes
	err := policy.Validate("Ää1!ßßß")
	require.Error(t, err)
	assert.Equal(t, "Password must be at least 8 characters", err.Error())
}

func TestPasswordPolicy_Configurable(t *testing.T) {
	t.Parallel()

	policy := NewPasswordPolicy(&config.Config{
		PasswordStrength: &config.PasswordStrengthConfig{MinLength: 4, MaxLength: 6},
	})

	assert.NoError(t, policy.Validate("abcd"))
	err := policy.Validate("abcdefg")
	require.Error(t, err)
	assert.Equal(t, "Password cannot exceed 6 characters", err.Error())
}
