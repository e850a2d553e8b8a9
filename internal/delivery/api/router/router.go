// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"taskmanager/internal/delivery/api/middleware"
	"taskmanager/internal/delivery/api/router/handler"
	"taskmanager/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	TaskHandler    *handler.TaskHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	taskHandler    *handler.TaskHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		taskHandler:    params.TaskHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Account routes. Registration and login are public.
	usersGroup := e.Group("/users")
	{
		usersGroup.POST("/register", r.userHandler.Register)
		usersGroup.POST("/login", r.userHandler.Login)

		usersGroup.GET("", r.userHandler.ListUsers, r.authMiddleware.Authenticate, r.authMiddleware.RequireRole(entity.RoleAdmin))
		usersGroup.GET("/:id", r.userHandler.GetUser, r.authMiddleware.Authenticate)
		usersGroup.DELETE("/:id", r.userHandler.DeleteUser, r.authMiddleware.Authenticate)
	}

	// Task routes, all scoped to the authenticated owner
	tasksGroup := e.Group("/tasks")
	tasksGroup.Use(r.authMiddleware.Authenticate)
	{
		tasksGroup.GET("", r.taskHandler.ListTasks)
		tasksGroup.POST("", r.taskHandler.CreateTask)
		tasksGroup.GET("/:id", r.taskHandler.GetTask)
		tasksGroup.PUT("/:id", r.taskHandler.UpdateTask)
		tasksGroup.DELETE("/:id", r.taskHandler.DeleteTask)
	}
}
