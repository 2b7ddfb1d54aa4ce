package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	domainerrors "credo/internal/domain/errors"
)

func handleError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.HandleHTTPError(err, c)

	return rec
}

func TestErrorMiddleware_MapsCredentialErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
		wantCode    string
	}{
		{
			name:        "invalid credentials",
			err:         domainerrors.ErrInvalidCredentials.WrapMessage("password verification failed"),
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Credentials invalid or not provided.",
			wantCode:    "INVALID_CREDENTIALS",
		},
		{
			name:        "email conflict",
			err:         domainerrors.ErrEmailConflict.WrapMessage("email address already registered"),
			wantStatus:  http.StatusConflict,
			wantMessage: "Email already registered.",
			wantCode:    "EMAIL_ALREADY_REGISTERED",
		},
		{
			name:        "unknown reset email",
			err:         domainerrors.ErrAccountNotFound.WrapMessage("no account registered for this email"),
			wantStatus:  http.StatusNotFound,
			wantMessage: "No user",
			wantCode:    "ACCOUNT_NOT_FOUND",
		},
		{
			name:        "invalid reset token",
			err:         domainerrors.ErrInvalidResetToken.WrapMessage("reset token expired"),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid reset token.",
			wantCode:    "INVALID_RESET_TOKEN",
		},
		{
			name:        "refresh forbidden",
			err:         domainerrors.ErrRefreshForbidden.WrapMessage("refresh token verification failed"),
			wantStatus:  http.StatusForbidden,
			wantMessage: "Refresh token rejected.",
			wantCode:    "REFRESH_FORBIDDEN",
		},
		{
			name:        "validation failure",
			err:         domainerrors.ErrValidation.WrapMessage("email or password failed shape checks"),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid input.",
			wantCode:    "VALIDATION_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := handleError(t, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantMessage)
			assert.Contains(t, rec.Body.String(), tt.wantCode)
			// Internal wrap context stays out of the response body.
			assert.NotContains(t, rec.Body.String(), "verification failed")
		})
	}
}

func TestErrorMiddleware_UnknownErrorBecomesInternal(t *testing.T) {
	rec := handleError(t, errors.New("pq: connection reset by peer"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
	// The raw cause is logged, never returned.
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestErrorMiddleware_EchoHTTPError(t *testing.T) {
	rec := handleError(t, echo.NewHTTPError(http.StatusNotFound, "Not Found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "HTTP_ERROR")
}
