package auth

import (
	"testing"
	"time"

	"taskmanager/config"
	"taskmanager/internal/domain/entity"
	"taskmanager/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_access_secret_key_very_long_for_testing"

func newTestConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.JWT = config.JWTConfig{
		Secret:   secret,
		Issuer:   "TaskManager",
		Audience: "TaskManagerUsers",
		TTL:      time.Hour,
	}

	return cfg
}

func newTestJWTService(t *testing.T, cfg *config.Config) *jwtService {
	t.Helper()

	svc, err := NewJWTService(cfg, newDiscardLogger())
	require.NoError(t, err)

	return svc.(*jwtService)
}

func TestJWTService_GenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService(t, newTestConfig(testSecret))

	user := &entity.User{ID: 42, Email: "a@x.com", Role: entity.RoleAdmin}
	token, expiresAt, err := svc.GenerateToken(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "Admin", claims.Role)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "TaskManager", claims.Issuer)
	assert.Equal(t, jwt.ClaimStrings{"TaskManagerUsers"}, claims.Audience)
	assert.NotEmpty(t, claims.ID)

	principal := claims.Principal()
	assert.Equal(t, entity.Principal{UserID: 42, Email: "a@x.com", Role: entity.RoleAdmin}, principal)
}

func TestJWTService_Expiry(t *testing.T) {
	svc := newTestJWTService(t, newTestConfig(testSecret))

	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	token, _, err := svc.GenerateToken(&entity.User{ID: 7, Email: "b@x.com", Role: entity.RoleUser})
	require.NoError(t, err)

	// Still valid just before the TTL elapses
	svc.now = func() time.Time { return issued.Add(59 * time.Minute) }
	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)

	// Rejected after the TTL
	svc.now = func() time.Time { return issued.Add(61 * time.Minute) }
	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestJWTService_RejectsForeignTokens(t *testing.T) {
	svc := newTestJWTService(t, newTestConfig(testSecret))
	user := &entity.User{ID: 1, Email: "c@x.com", Role: entity.RoleUser}

	t.Run("malformed", func(t *testing.T) {
		claims, err := svc.ValidateToken("clearly-not-a-jwt-token-format")
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("different secret", func(t *testing.T) {
		other := newTestJWTService(t, newTestConfig("another_secret_key_that_is_long_enough_1234"))
		token, _, err := other.GenerateToken(user)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("different audience", func(t *testing.T) {
		cfg := newTestConfig(testSecret)
		cfg.JWT.Audience = "SomeoneElse"
		other := newTestJWTService(t, cfg)
		token, _, err := other.GenerateToken(user)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("different issuer", func(t *testing.T) {
		cfg := newTestConfig(testSecret)
		cfg.JWT.Issuer = "Elsewhere"
		other := newTestJWTService(t, cfg)
		token, _, err := other.GenerateToken(user)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("none algorithm", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"userId": 1, "role": "User", "iss": "TaskManager", "aud": "TaskManagerUsers",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.ValidateToken(signed)
		assert.Error(t, err)
	})

	t.Run("unknown role", func(t *testing.T) {
		token, _, err := svc.GenerateToken(&entity.User{ID: 1, Email: "c@x.com", Role: "root"})
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("missing expiry", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"userId": 1, "role": "User", "iss": "TaskManager", "aud": "TaskManagerUsers",
		})
		signed, err := token.SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = svc.ValidateToken(signed)
		assert.Error(t, err)
	})
}

func TestJWTService_SecretRules(t *testing.T) {
	t.Run("development fallback", func(t *testing.T) {
		svc := newTestJWTService(t, newTestConfig(""))
		assert.Equal(t, []byte(developmentSecret), svc.secret)
	})

	production := func(secret string) *config.Config {
		cfg := newTestConfig(secret)
		cfg.Env.Env = config.EnvProduction

		return cfg
	}

	for name, secret := range map[string]string{
		"empty":    "",
		"fallback": developmentSecret,
		"short":    "too-short",
	} {
		t.Run("production rejects "+name, func(t *testing.T) {
			svc, err := NewJWTService(production(secret), newDiscardLogger())
			assert.Nil(t, svc)
			assert.ErrorIs(t, err, ErrWeakSecret)
		})
	}

	t.Run("production accepts strong secret", func(t *testing.T) {
		_, err := NewJWTService(production(testSecret), newDiscardLogger())
		assert.NoError(t, err)
	})
}
