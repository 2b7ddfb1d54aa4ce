package service

import "credo/internal/domain/entity"

// ResetTokenManager generates and validates single-use, time-boxed password
// reset tokens. Only the SHA-256 digest of a token is ever stored on the
// account; the raw value exists solely in the email sent to the owner.
type ResetTokenManager interface {
	// Issue generates a fresh random token, writes its digest and expiry onto
	// the account in memory, and returns the raw token. Persisting the account
	// is the caller's responsibility.
	Issue(account *entity.Account) (string, error)

	// Validate checks that the account has a live pending reset token.
	// It does not compare the submitted token; that comparison happens via
	// the repository lookup keyed by digest.
	Validate(account *entity.Account) error

	// Digest returns the deterministic one-way digest used to store and look
	// up reset tokens.
	Digest(rawToken string) string
}
