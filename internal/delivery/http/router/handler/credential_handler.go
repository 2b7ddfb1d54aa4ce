// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	deliverycontext "credo/internal/delivery/context"
	"credo/internal/delivery/http/response"
	"credo/internal/usecase"
)

// CredentialHandler holds dependencies for credential-related handlers.
type CredentialHandler struct {
	uc     usecase.CredentialUsecase
	logger *slog.Logger
}

// NewCredentialHandler is the constructor for CredentialHandler, injected by Fx.
func NewCredentialHandler(uc usecase.CredentialUsecase, logger *slog.Logger) *CredentialHandler {
	return &CredentialHandler{
		uc:     uc,
		logger: logger,
	}
}

// accountView is the public shape of an account. The password hash and any
// pending reset state never leave the process.
type accountView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type tokenPairView struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Register handles the account registration request.
func (h *CredentialHandler) Register(c echo.Context) error {
	var input *usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	output, err := h.uc.Register(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	view := accountView{
		ID:    output.Account.ID.String(),
		Email: output.Account.Email,
	}

	return response.Success(c, http.StatusCreated, view, "Account registered successfully")
}

// Login handles the login request.
func (h *CredentialHandler) Login(c echo.Context) error {
	var input *usecase.AuthenticateInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	output, err := h.uc.Authenticate(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	view := tokenPairView{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
	}

	return response.Success(c, http.StatusOK, view, "Login successful")
}

// RequestReset handles the password reset request. The raw reset token is
// delivered by email only and is never part of the HTTP response.
func (h *CredentialHandler) RequestReset(c echo.Context) error {
	var input *usecase.RequestResetInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reset input")
	}

	if _, err := h.uc.RequestReset(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Email sent successfully.")
}

// SetNewPassword consumes the reset token from the URL path and replaces the
// account password.
func (h *CredentialHandler) SetNewPassword(c echo.Context) error {
	var input *usecase.SetNewPasswordInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password input")
	}
	// Bind leaves input nil on an empty body; the path token still applies.
	if input == nil {
		input = &usecase.SetNewPasswordInput{}
	}
	input.ResetToken = c.Param("resetToken")

	if err := h.uc.SetNewPassword(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password set successfully.")
}

// Refresh handles the access token refresh request.
func (h *CredentialHandler) Refresh(c echo.Context) error {
	var input *usecase.RefreshInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid refresh input")
	}

	output, err := h.uc.RefreshAccessToken(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	view := tokenPairView{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
	}

	return response.Success(c, http.StatusOK, view, "Token refreshed successfully")
}

// Me returns the identity carried by the verified access token.
func (h *CredentialHandler) Me(c echo.Context) error {
	accountID, ok := deliverycontext.GetAuthenticatedAccountID(c)
	if !ok {
		return response.Unauthorized(c, "MISSING_IDENTITY", "No authenticated account on request")
	}
	email, _ := deliverycontext.GetAuthenticatedAccountEmail(c)

	view := accountView{
		ID:    accountID.String(),
		Email: email,
	}

	return response.Success(c, http.StatusOK, view, "")
}

// HealthCheck reports process liveness.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "")
}
