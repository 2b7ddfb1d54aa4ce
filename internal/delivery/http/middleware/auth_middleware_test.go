package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	deliverycontext "credo/internal/delivery/context"
	"credo/internal/domain/service"
)

// stubIssuer verifies exactly one scripted token.
type stubIssuer struct {
	validToken string
	claims     *service.Claims
}

func (s *stubIssuer) IssueAccessToken(uuid.UUID, string) (string, error)  { return "", nil }
func (s *stubIssuer) IssueRefreshToken(uuid.UUID, string) (string, error) { return "", nil }
func (s *stubIssuer) Refresh(string) (string, error)                      { return "", nil }

func (s *stubIssuer) VerifyAccessToken(token string) (*service.Claims, error) {
	if token == s.validToken {
		return s.claims, nil
	}

	return nil, errors.New("token is not valid")
}

func runAuthenticate(t *testing.T, authHeader string, issuer service.TokenIssuer) (echo.Context, *httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	nextCalled := false
	next := func(c echo.Context) error {
		nextCalled = true

		return nil
	}

	err := NewAuthMiddleware(issuer).Authenticate(next)(c)
	require.NoError(t, err)

	return c, rec, nextCalled
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	accountID := uuid.New()
	issuer := &stubIssuer{
		validToken: "good.jwt",
		claims:     &service.Claims{AccountID: accountID, Email: "alice@example.com"},
	}

	c, rec, nextCalled := runAuthenticate(t, "Bearer good.jwt", issuer)

	assert.True(t, nextCalled)
	assert.Equal(t, http.StatusOK, rec.Code)

	gotID, ok := deliverycontext.GetAuthenticatedAccountID(c)
	require.True(t, ok)
	assert.Equal(t, accountID, gotID)

	gotEmail, ok := deliverycontext.GetAuthenticatedAccountEmail(c)
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", gotEmail)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	_, rec, nextCalled := runAuthenticate(t, "", &stubIssuer{})

	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_NotBearerFormat(t *testing.T) {
	_, rec, nextCalled := runAuthenticate(t, "Basic dXNlcjpwYXNz", &stubIssuer{})

	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	issuer := &stubIssuer{validToken: "good.jwt"}

	_, rec, nextCalled := runAuthenticate(t, "Bearer tampered.jwt", issuer)

	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
