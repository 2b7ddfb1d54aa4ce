package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by both access and refresh tokens.
type Claims struct {
	AccountID uuid.UUID `json:"uid"`
	Email     string    `json:"email"`
	Type      string    `json:"type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies the access/refresh credential pair.
// Access and refresh tokens use separate RSA key pairs, so a token of one
// kind can never verify as the other.
type TokenIssuer interface {
	// IssueAccessToken signs a short-lived access token for the given identity.
	IssueAccessToken(accountID uuid.UUID, email string) (string, error)

	// IssueRefreshToken signs a longer-lived refresh token for the given identity.
	IssueRefreshToken(accountID uuid.UUID, email string) (string, error)

	// Refresh verifies a refresh token and mints a new access token carrying
	// the same identity claims. The refresh token itself is not rotated.
	// Any verification failure, whether signature, algorithm, or expiry,
	// yields the single forbidden outcome.
	Refresh(refreshToken string) (string, error)

	// VerifyAccessToken validates an access token and returns its claims.
	VerifyAccessToken(token string) (*Claims, error)
}
