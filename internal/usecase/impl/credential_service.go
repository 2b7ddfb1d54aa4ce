// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"credo/config"
	deliverycontext "credo/internal/delivery/context"
	"credo/internal/domain/entity"
	domainerrors "credo/internal/domain/errors"
	"credo/internal/domain/repository"
	"credo/internal/domain/service"
	"credo/internal/usecase"
)

// credentialService implements the CredentialUsecase interface.
type credentialService struct {
	txManager    repository.TransactionManager
	accountRepo  repository.AccountRepository
	hasher       service.PasswordHasher
	tokenIssuer  service.TokenIssuer
	resetTokens  service.ResetTokenManager
	notifier     service.Notifier
	resetBaseURL string
	validate     *validator.Validate
	logger       *slog.Logger
}

// CredentialServiceParams holds dependencies for credentialService, injected by Fx.
type CredentialServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AccountRepo repository.AccountRepository
	Hasher      service.PasswordHasher
	TokenIssuer service.TokenIssuer
	ResetTokens service.ResetTokenManager
	Notifier    service.Notifier
	Config      *config.Config
	Logger      *slog.Logger
}

// NewCredentialService is the constructor for credentialService. It receives all dependencies as interfaces.
func NewCredentialService(params CredentialServiceParams) usecase.CredentialUsecase {
	resetBaseURL := ""
	if params.Config != nil {
		resetBaseURL = strings.TrimRight(params.Config.Reset.BaseURL, "/")
	}

	return &credentialService{
		txManager:    params.TxManager,
		accountRepo:  params.AccountRepo,
		hasher:       params.Hasher,
		tokenIssuer:  params.TokenIssuer,
		resetTokens:  params.ResetTokens,
		notifier:     params.Notifier,
		resetBaseURL: resetBaseURL,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *credentialService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// normalizeEmail lowercases and trims the address so lookups and uniqueness
// are case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account. The password is hashed exactly once and the
// plaintext is never persisted or logged.
func (srv *credentialService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	// An empty request body binds to a nil input.
	if input == nil {
		return nil, domainerrors.ErrValidation.WrapMessage("missing request payload")
	}

	input.Email = normalizeEmail(input.Email)
	if err := srv.validate.Struct(input); err != nil {
		srv.log(ctx).Warn("Registration input validation failed", slog.Any("error", err))

		return nil, domainerrors.ErrValidation.WrapMessage("email or password failed shape checks")
	}

	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	hashed, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrHashFailed.Wrap(err, "failed to hash password during registration")
	}

	account := &entity.Account{
		Email:        input.Email,
		PasswordHash: hashed,
	}

	if err := srv.accountRepo.Insert(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			srv.log(ctx).Warn("Registration rejected, email already taken", slog.String("email", input.Email))

			return nil, domainerrors.ErrEmailConflict.WrapMessage("email address already registered")
		}

		srv.log(ctx).Error("Failed to insert account", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to insert account")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("accountID", account.ID))

	return &usecase.RegisterOutput{Account: account}, nil
}

// Authenticate verifies an email/password pair and issues a token pair.
// Unknown email and wrong password collapse into the same error so callers
// cannot probe which addresses are registered.
func (srv *credentialService) Authenticate(ctx context.Context, input *usecase.AuthenticateInput) (*usecase.TokenPairOutput, error) {
	if input == nil {
		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("missing email or password")
	}

	input.Email = normalizeEmail(input.Email)
	if err := srv.validate.Struct(input); err != nil {
		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("missing email or password")
	}

	account, err := srv.accountRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.log(ctx).Warn("Login attempt for unknown email", slog.String("email", input.Email))

			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("account lookup failed")
		}

		srv.log(ctx).Error("Failed to look up account during login", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Warn("Login attempt with wrong password", slog.Any("accountID", account.ID))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("password verification failed")
	}

	return srv.issueTokenPair(ctx, account)
}

func (srv *credentialService) issueTokenPair(ctx context.Context, account *entity.Account) (*usecase.TokenPairOutput, error) {
	accessToken, err := srv.tokenIssuer.IssueAccessToken(account.ID, account.Email)
	if err != nil {
		srv.log(ctx).Error("Failed to sign access token", slog.Any("accountID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue access token")
	}

	refreshToken, err := srv.tokenIssuer.IssueRefreshToken(account.ID, account.Email)
	if err != nil {
		srv.log(ctx).Error("Failed to sign refresh token", slog.Any("accountID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue refresh token")
	}

	return &usecase.TokenPairOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RequestReset issues a single-use reset token for the account, stores only
// its digest and mails the raw token to the account owner. Re-requesting
// overwrites any pending token, so at most one is live per account.
func (srv *credentialService) RequestReset(ctx context.Context, input *usecase.RequestResetInput) (*usecase.RequestResetOutput, error) {
	if input == nil {
		return nil, domainerrors.ErrValidation.WrapMessage("missing request payload")
	}

	input.Email = normalizeEmail(input.Email)
	if err := srv.validate.Struct(input); err != nil {
		return nil, domainerrors.ErrValidation.WrapMessage("email is required")
	}

	srv.log(ctx).Info("Starting password reset request", slog.String("email", input.Email))

	account, err := srv.accountRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound.WrapMessage("no account registered for this email")
		}

		srv.log(ctx).Error("Failed to look up account for reset", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	rawToken, err := srv.resetTokens.Issue(account)
	if err != nil {
		srv.log(ctx).Error("Failed to issue reset token", slog.Any("accountID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue reset token")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.AccountRepo().Save(ctx, account)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to persist reset token digest", slog.Any("accountID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to persist reset token digest")
	}

	if err := srv.sendResetEmail(ctx, account, rawToken); err != nil {
		srv.log(ctx).Error("Failed to send reset email", slog.Any("accountID", account.ID), slog.Any("error", err))

		return nil, domainerrors.ErrMailDelivery.Wrap(err, "failed to deliver reset email")
	}

	srv.log(ctx).Debug("Reset email dispatched", slog.Any("accountID", account.ID))

	return &usecase.RequestResetOutput{Account: account, ResetToken: rawToken}, nil
}

func (srv *credentialService) sendResetEmail(ctx context.Context, account *entity.Account, rawToken string) error {
	resetURL := fmt.Sprintf("%s/newpass/%s", srv.resetBaseURL, rawToken)

	return srv.notifier.SendEmail(ctx, service.Message{
		Receiver: account.Email,
		Subject:  "Password reset",
		Body: fmt.Sprintf(
			"<p>A password reset was requested for your account.</p>"+
				"<p>Follow <a href=%q>this link</a> within the next hour to choose a new password.</p>"+
				"<p>If you did not request a reset, you can ignore this email.</p>",
			resetURL,
		),
	})
}

// SetNewPassword consumes a reset token. Lookup, expiry check, rehash and
// digest clearing all happen inside one transaction so a token can never be
// spent twice.
func (srv *credentialService) SetNewPassword(ctx context.Context, input *usecase.SetNewPasswordInput) error {
	if input == nil || input.ResetToken == "" {
		return domainerrors.ErrInvalidResetToken.WrapMessage("reset token is required")
	}
	if err := srv.validate.Struct(input); err != nil {
		return domainerrors.ErrValidation.WrapMessage("password failed shape checks")
	}

	digest := srv.resetTokens.Digest(input.ResetToken)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := accountRepo.FindByResetTokenHash(ctx, digest)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrInvalidResetToken.WrapMessage("no account holds this reset token")
			}

			return errors.Wrap(err, "failed to find account by reset token digest")
		}

		if err := srv.resetTokens.Validate(account); err != nil {
			return err
		}

		hashed, err := srv.hasher.Hash(input.NewPassword)
		if err != nil {
			return domainerrors.ErrHashFailed.Wrap(err, "failed to hash replacement password")
		}

		account.PasswordHash = hashed
		account.ClearPendingReset()

		if err := accountRepo.Save(ctx, account); err != nil {
			return errors.Wrap(err, "failed to save account with new password")
		}

		srv.log(ctx).Info("Password replaced via reset token", slog.Any("accountID", account.ID))

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Password reset consumption failed", slog.Any("error", err))

		return err
	}

	return nil
}

// RefreshAccessToken exchanges a valid refresh token for a fresh access token.
// The refresh token itself is not rotated and is echoed back to the caller.
func (srv *credentialService) RefreshAccessToken(ctx context.Context, input *usecase.RefreshInput) (*usecase.TokenPairOutput, error) {
	if input == nil || input.RefreshToken == "" {
		return nil, domainerrors.ErrRefreshForbidden.WrapMessage("refresh token is required")
	}

	accessToken, err := srv.tokenIssuer.Refresh(input.RefreshToken)
	if err != nil {
		srv.log(ctx).Warn("Refresh token rejected", slog.Any("error", err))

		return nil, err
	}

	return &usecase.TokenPairOutput{
		AccessToken:  accessToken,
		RefreshToken: input.RefreshToken,
	}, nil
}
