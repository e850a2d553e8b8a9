package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "taskmanager/internal/delivery/context"
	"taskmanager/internal/domain/entity"
	domainerrors "taskmanager/internal/domain/errors"
	"taskmanager/internal/domain/service"

	"github.com/labstack/echo/v4"
)

const bearerPrefix = "bearer "

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, logger: logger}
}

// Authenticate validates the bearer access token and stores the principal on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
		if authHeader == "" {
			return domainerrors.ErrMissingToken
		}

		if len(authHeader) <= len(bearerPrefix) || !strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			return domainerrors.ErrInvalidToken.WithMessage("Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.ValidateToken(strings.TrimSpace(authHeader[len(bearerPrefix):]))
		if err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).
				Debug("Rejected access token", slog.Any("error", err))

			return domainerrors.ErrInvalidToken
		}

		deliverycontext.SetPrincipal(c, claims.Principal())

		return next(c)
	}
}

// RequireRole is a middleware factory that checks if the user has a specific role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := GetPrincipal(c)
			if !ok {
				return domainerrors.ErrMissingToken
			}

			if principal.Role != requiredRole {
				if requiredRole == entity.RoleAdmin {
					return domainerrors.ErrAdminRequired
				}

				return domainerrors.ErrForbidden.WithMessage("Permission denied: require '" + requiredRole.String() + "' role")
			}

			return next(c)
		}
	}
}

// GetPrincipal returns the caller authenticated by Authenticate.
func GetPrincipal(c echo.Context) (entity.Principal, bool) {
	return deliverycontext.GetPrincipal(c)
}
