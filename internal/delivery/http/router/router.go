// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"credo/internal/delivery/http/middleware"
	"credo/internal/delivery/http/router/handler"
)

type RouterParams struct {
	fx.In

	CredentialHandler *handler.CredentialHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	credentialHandler *handler.CredentialHandler
	authMiddleware    *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		credentialHandler: params.CredentialHandler,
		authMiddleware:    params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Credential lifecycle routes
	e.POST("/register", r.credentialHandler.Register)
	e.POST("/login", r.credentialHandler.Login)
	e.POST("/reset", r.credentialHandler.RequestReset)
	e.POST("/newpass/:resetToken", r.credentialHandler.SetNewPassword)
	e.POST("/refresh", r.credentialHandler.Refresh)

	// Routes that require a verified access token
	meGroup := e.Group("/me")
	meGroup.Use(r.authMiddleware.Authenticate)
	{
		meGroup.GET("", r.credentialHandler.Me)
	}
}
