package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credo/internal/domain/entity"
	domainerrors "credo/internal/domain/errors"
	"credo/internal/usecase"
)

// stubCredentialUsecase lets each test script the usecase outcome.
type stubCredentialUsecase struct {
	registerFn       func(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error)
	authenticateFn   func(ctx context.Context, input *usecase.AuthenticateInput) (*usecase.TokenPairOutput, error)
	requestResetFn   func(ctx context.Context, input *usecase.RequestResetInput) (*usecase.RequestResetOutput, error)
	setNewPasswordFn func(ctx context.Context, input *usecase.SetNewPasswordInput) error
	refreshFn        func(ctx context.Context, input *usecase.RefreshInput) (*usecase.TokenPairOutput, error)
}

func (s *stubCredentialUsecase) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	return s.registerFn(ctx, input)
}

func (s *stubCredentialUsecase) Authenticate(ctx context.Context, input *usecase.AuthenticateInput) (*usecase.TokenPairOutput, error) {
	return s.authenticateFn(ctx, input)
}

func (s *stubCredentialUsecase) RequestReset(ctx context.Context, input *usecase.RequestResetInput) (*usecase.RequestResetOutput, error) {
	return s.requestResetFn(ctx, input)
}

func (s *stubCredentialUsecase) SetNewPassword(ctx context.Context, input *usecase.SetNewPasswordInput) error {
	return s.setNewPasswordFn(ctx, input)
}

func (s *stubCredentialUsecase) RefreshAccessToken(ctx context.Context, input *usecase.RefreshInput) (*usecase.TokenPairOutput, error) {
	return s.refreshFn(ctx, input)
}

func newTestHandler(uc usecase.CredentialUsecase) *CredentialHandler {
	return NewCredentialHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestCredentialHandler_Register(t *testing.T) {
	accountID := uuid.New()
	uc := &stubCredentialUsecase{
		registerFn: func(_ context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
			assert.Equal(t, "alice@example.com", input.Email)

			return &usecase.RegisterOutput{
				Account: &entity.Account{
					ID:           accountID,
					Email:        input.Email,
					PasswordHash: "should-not-leak",
				},
			}, nil
		},
	}

	c, rec := newJSONContext(http.MethodPost, "/register", `{"email":"alice@example.com","password":"Password123!"}`)
	err := newTestHandler(uc).Register(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), accountID.String())
	assert.Contains(t, rec.Body.String(), "alice@example.com")
	// The hash never appears in the response.
	assert.NotContains(t, rec.Body.String(), "should-not-leak")
}

func TestCredentialHandler_Login(t *testing.T) {
	uc := &stubCredentialUsecase{
		authenticateFn: func(_ context.Context, input *usecase.AuthenticateInput) (*usecase.TokenPairOutput, error) {
			return &usecase.TokenPairOutput{
				AccessToken:  "access.jwt",
				RefreshToken: "refresh.jwt",
			}, nil
		},
	}

	c, rec := newJSONContext(http.MethodPost, "/login", `{"email":"alice@example.com","password":"Password123!"}`)
	err := newTestHandler(uc).Login(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "access.jwt")
	assert.Contains(t, rec.Body.String(), "refresh.jwt")
}

func TestCredentialHandler_RequestReset(t *testing.T) {
	uc := &stubCredentialUsecase{
		requestResetFn: func(_ context.Context, input *usecase.RequestResetInput) (*usecase.RequestResetOutput, error) {
			return &usecase.RequestResetOutput{ResetToken: "raw-token-must-not-leak"}, nil
		},
	}

	c, rec := newJSONContext(http.MethodPost, "/reset", `{"email":"alice@example.com"}`)
	err := newTestHandler(uc).RequestReset(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email sent successfully.")
	// The raw token only travels by email.
	assert.NotContains(t, rec.Body.String(), "raw-token-must-not-leak")
}

func TestCredentialHandler_SetNewPassword(t *testing.T) {
	var gotToken string
	uc := &stubCredentialUsecase{
		setNewPasswordFn: func(_ context.Context, input *usecase.SetNewPasswordInput) error {
			gotToken = input.ResetToken

			return nil
		},
	}

	c, rec := newJSONContext(http.MethodPost, "/newpass/rawtoken1234", `{"password":"NewPassword456!"}`)
	c.SetParamNames("resetToken")
	c.SetParamValues("rawtoken1234")

	err := newTestHandler(uc).SetNewPassword(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Password set successfully.")
	assert.Equal(t, "rawtoken1234", gotToken)
}

func TestCredentialHandler_SetNewPasswordEmptyBody(t *testing.T) {
	var got *usecase.SetNewPasswordInput
	uc := &stubCredentialUsecase{
		setNewPasswordFn: func(_ context.Context, input *usecase.SetNewPasswordInput) error {
			got = input

			return nil
		},
	}

	// An empty body binds to nil; the handler must still deliver the path token.
	c, rec := newJSONContext(http.MethodPost, "/newpass/rawtoken1234", "")
	c.SetParamNames("resetToken")
	c.SetParamValues("rawtoken1234")

	err := newTestHandler(uc).SetNewPassword(c)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "rawtoken1234", got.ResetToken)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCredentialHandler_RegisterEmptyBody(t *testing.T) {
	uc := &stubCredentialUsecase{
		registerFn: func(_ context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
			// The handler forwards the nil DTO; the usecase answers with
			// its validation error rather than dereferencing it.
			require.Nil(t, input)

			return nil, domainerrors.ErrValidation.WrapMessage("missing request payload")
		},
	}

	c, _ := newJSONContext(http.MethodPost, "/register", "")
	err := newTestHandler(uc).Register(c)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestCredentialHandler_Refresh(t *testing.T) {
	uc := &stubCredentialUsecase{
		refreshFn: func(_ context.Context, input *usecase.RefreshInput) (*usecase.TokenPairOutput, error) {
			return &usecase.TokenPairOutput{
				AccessToken:  "new.access.jwt",
				RefreshToken: input.RefreshToken,
			}, nil
		},
	}

	c, rec := newJSONContext(http.MethodPost, "/refresh", `{"refresh_token":"refresh.jwt"}`)
	err := newTestHandler(uc).Refresh(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "new.access.jwt")
	assert.Contains(t, rec.Body.String(), "refresh.jwt")
}

func TestHealthCheck(t *testing.T) {
	c, rec := newJSONContext(http.MethodGet, "/health", "")

	require.NoError(t, HealthCheck(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
