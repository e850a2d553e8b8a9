// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"log/slog"
	"strconv"
	"time"

	"taskmanager/config"
	"taskmanager/internal/domain/entity"
	"taskmanager/internal/domain/service"
	"taskmanager/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// developmentSecret signs tokens when jwt.secret is not configured outside production.
const developmentSecret = "taskmanager-development-secret-do-not-use-in-production"

// minProductionSecretLength is the minimum HS256 key size accepted in production.
const minProductionSecretLength = 32

var (
	// ErrInvalidToken is returned for any token that fails parsing or validation.
	ErrInvalidToken = errors.New("invalid token")
	// ErrWeakSecret is returned when production runs without a proper signing secret.
	ErrWeakSecret = errors.New("jwt secret must be set to at least 32 bytes in production")
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret   []byte        // HMAC key shared by signing and validation.
	issuer   string        // Expected "iss" claim.
	audience string        // Expected "aud" claim.
	ttl      time.Duration // Time-to-live for access tokens.
	now      func() time.Time
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config, logger *slog.Logger) (service.TokenService, error) {
	secret := cfg.JWT.Secret
	if cfg.IsProduction() {
		if secret == "" || secret == developmentSecret || len(secret) < minProductionSecretLength {
			return nil, ErrWeakSecret
		}
	} else if secret == "" {
		logger.Warn("jwt.secret is not configured; using the development signing key")
		secret = developmentSecret
	}

	ttl := cfg.JWT.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &jwtService{
		secret:   []byte(secret),
		issuer:   cfg.JWT.Issuer,
		audience: cfg.JWT.Audience,
		ttl:      ttl,
		now:      time.Now,
	}, nil
}

// GenerateToken creates a signed HS256 access token for the user.
func (s *jwtService) GenerateToken(user *entity.User) (string, time.Time, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)

	claims := &service.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   strconv.FormatInt(user.ID, 10),
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "sign access token")
	}

	return signed, expiresAt, nil
}

// ValidateToken parses the token and checks signature, issuer, audience and expiry.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidToken, err.Error())
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.UserID <= 0 || !entity.Role(claims.Role).IsValid() {
		return nil, errors.Wrap(ErrInvalidToken, "missing identity claims")
	}

	return claims, nil
}
