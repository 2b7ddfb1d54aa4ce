package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/pkg/errors"

	"credo/config"
	"credo/internal/domain/entity"
	domainerrors "credo/internal/domain/errors"
	"credo/internal/domain/service"
)

// resetTokenByteLen gives 160 bits of entropy, matching the strength of the
// SHA-1-era tokens this replaces while staying short enough for a URL path.
const resetTokenByteLen = 20

// resetTokenManager issues and validates single-use password reset tokens.
// Reset tokens are time-boxed and single-use, so a fast collision-resistant
// digest (SHA-256) is enough here; the slow bcrypt hash stays reserved for
// passwords.
type resetTokenManager struct {
	ttl   time.Duration
	clock service.Clock
}

// NewResetTokenManager is the constructor for resetTokenManager.
func NewResetTokenManager(cfg *config.Config, clock service.Clock) service.ResetTokenManager {
	return &resetTokenManager{
		ttl:   cfg.Reset.TokenTTL,
		clock: clock,
	}
}

// Issue generates a fresh random token and writes its digest and expiry onto
// the account. The account is not persisted here; minting the token and
// storing the side effect are kept separate so the orchestrator controls the
// transaction boundary.
func (m *resetTokenManager) Issue(account *entity.Account) (string, error) {
	buf := make([]byte, resetTokenByteLen)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to generate reset token")
	}

	rawToken := hex.EncodeToString(buf)
	account.SetPendingReset(m.Digest(rawToken), m.clock.Now().Add(m.ttl))

	return rawToken, nil
}

// Validate checks liveness of whatever reset token is pending on the account.
// Matching the submitted token against the stored digest happens upstream via
// the repository lookup; by the time an account reaches Validate the digests
// already agree.
func (m *resetTokenManager) Validate(account *entity.Account) error {
	if account == nil || !account.HasPendingReset() {
		return domainerrors.ErrInvalidResetToken.WrapMessage("no pending reset token")
	}
	if !m.clock.Now().Before(*account.ResetTokenExpiry) {
		return domainerrors.ErrInvalidResetToken.WrapMessage("reset token expired")
	}

	return nil
}

// Digest returns the SHA-256 hex digest of a raw reset token.
func (m *resetTokenManager) Digest(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))

	return hex.EncodeToString(sum[:])
}
