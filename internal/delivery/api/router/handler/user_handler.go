// Package handler contains the HTTP handlers for the API.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"taskmanager/internal/delivery/api/middleware"
	"taskmanager/internal/delivery/api/response"
	domainerrors "taskmanager/internal/domain/errors"
	"taskmanager/internal/usecase"
	"taskmanager/internal/util"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler.
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

// RegisterRequest represents the request body for creating an account
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents the request body for signing in
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register handles account registration.
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	req.Email = util.NormalizeEmail(req.Email)

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	output, err := h.userUC.Register(c.Request().Context(), &usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, "/users/"+strconv.FormatInt(output.User.ID, 10), newAuthResponse(output))
}

// Login handles the user login request.
func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	req.Email = util.NormalizeEmail(req.Email)

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	output, err := h.userUC.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAuthResponse(output))
}

// ListUsers handles listing every account. Administrators only.
func (h *UserHandler) ListUsers(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrMissingToken)
	}

	users, err := h.userUC.ListUsers(c.Request().Context(), principal)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newUserResponses(users))
}

// GetUser handles reading one account with its tasks.
func (h *UserHandler) GetUser(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrMissingToken)
	}

	userID, ok := util.ParseID(c.Param("id"))
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrInvalidID)
	}

	user, err := h.userUC.GetUser(c.Request().Context(), principal, userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newUserResponse(user))
}

// DeleteUser handles removing an account and its tasks.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrMissingToken)
	}

	userID, ok := util.ParseID(c.Param("id"))
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrInvalidID)
	}

	if err := h.userUC.DeleteUser(c.Request().Context(), principal, userID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.NoContent(c)
}

func newAuthResponse(output *usecase.AuthOutput) *AuthResponse {
	return &AuthResponse{
		ID:    output.User.ID,
		Email: output.User.Email,
		Token: output.Token,
	}
}
