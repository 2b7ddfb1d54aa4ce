// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"credo/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=1,max=256"`
}

// AuthenticateInput defines the data required to log in.
type AuthenticateInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RequestResetInput defines the data required to start a password reset.
type RequestResetInput struct {
	Email string `json:"email" validate:"required"`
}

// SetNewPasswordInput defines the data required to consume a reset token.
type SetNewPasswordInput struct {
	ResetToken  string `json:"-"`
	NewPassword string `json:"password" validate:"required,min=1,max=256"`
}

// RefreshInput defines the data required to refresh an access token.
type RefreshInput struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// --- Output DTOs ---

// RegisterOutput returns the newly created account's basic information.
type RegisterOutput struct {
	Account *entity.Account
}

// TokenPairOutput returns a signed access/refresh credential pair.
type TokenPairOutput struct {
	AccessToken  string
	RefreshToken string
}

// RequestResetOutput returns the raw reset token alongside the account it was
// issued for. The raw token leaves the process only inside the reset email.
type RequestResetOutput struct {
	Account    *entity.Account
	ResetToken string
}

// CredentialUsecase defines the credential and session-lifecycle operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type CredentialUsecase interface {
	// Register creates a new account, hashing the password exactly once.
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// Authenticate verifies credentials and issues an access/refresh token pair.
	Authenticate(ctx context.Context, input *AuthenticateInput) (*TokenPairOutput, error)

	// RequestReset issues a single-use reset token, persists its digest and
	// emails the reset link to the account owner.
	RequestReset(ctx context.Context, input *RequestResetInput) (*RequestResetOutput, error)

	// SetNewPassword consumes a reset token and replaces the account password.
	SetNewPassword(ctx context.Context, input *SetNewPasswordInput) error

	// RefreshAccessToken mints a new access token from a valid refresh token.
	// The refresh token is echoed back unchanged.
	RefreshAccessToken(ctx context.Context, input *RefreshInput) (*TokenPairOutput, error)
}
