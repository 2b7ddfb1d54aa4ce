package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	deliverycontext "credo/internal/delivery/context"
	"credo/internal/delivery/http/response"
	"credo/internal/domain/service"
)

// AuthMiddleware provides middleware for JWT authentication.
type AuthMiddleware struct {
	issuer service.TokenIssuer
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(issuer service.TokenIssuer) *AuthMiddleware {
	return &AuthMiddleware{issuer: issuer}
}

// Authenticate validates the bearer access token and stores the verified
// subject on the request context. Refresh tokens are rejected here even
// though they are signed with the same algorithm.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "INVALID_TOKEN_FORMAT", "Invalid token format, must be Bearer token")
		}

		claims, err := m.issuer.VerifyAccessToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		deliverycontext.SetAuthenticatedAccount(c, claims.AccountID, claims.Email)

		return next(c)
	}
}
