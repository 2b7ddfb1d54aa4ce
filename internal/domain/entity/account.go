// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the core entity in the system, representing one registered principal.
// The password is stored only as a bcrypt hash; the plaintext never survives
// the registration or password-change call that received it.
type Account struct {
	ID               uuid.UUID  // The unique identifier for the account, immutable once assigned.
	Email            string     // Unique, lowercase-normalized login identifier.
	PasswordHash     string     // bcrypt hash of the account password.
	ResetTokenHash   *string    // SHA-256 hex digest of the pending reset token, nil when no reset is pending.
	ResetTokenExpiry *time.Time // Expiry of the pending reset token, always paired with ResetTokenHash.
	CreatedAt        time.Time  // Timestamp of when this account was created.
	UpdatedAt        time.Time  // Timestamp of the last modification to this account.
}

// HasPendingReset reports whether a reset token digest and its expiry are both set.
// The two fields are written and cleared together; checking both guards against
// a half-written record ever authorizing a password change.
func (a *Account) HasPendingReset() bool {
	return a.ResetTokenHash != nil && a.ResetTokenExpiry != nil
}

// SetPendingReset records the digest and expiry of a freshly issued reset token.
func (a *Account) SetPendingReset(digest string, expiry time.Time) {
	a.ResetTokenHash = &digest
	a.ResetTokenExpiry = &expiry
}

// ClearPendingReset removes the reset token digest and expiry, consuming the token.
func (a *Account) ClearPendingReset() {
	a.ResetTokenHash = nil
	a.ResetTokenExpiry = nil
}
