// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"credo/internal/domain/entity"
)

// Domain-specific errors for account persistence.
// This allows the application layer to handle specific outcomes without depending on database-specific errors.
var (
	// ErrAccountNotFound is returned when no account matches the lookup key.
	ErrAccountNotFound = errors.New("account not found")
	// ErrDuplicateEmail is returned when an insert violates the unique email constraint.
	ErrDuplicateEmail = errors.New("email already registered")
)

// AccountRepository defines the standard operations for account persistence.
// The application layer will depend on this interface, not the concrete implementation.
type AccountRepository interface {
	// FindByEmail retrieves a single account by its normalized email address.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindByResetTokenHash retrieves the account holding the given reset token digest.
	// Lookup is by digest so the raw token never reaches the database.
	FindByResetTokenHash(ctx context.Context, digest string) (*entity.Account, error)

	// Insert persists a new account. Returns ErrDuplicateEmail when the email is taken.
	Insert(ctx context.Context, account *entity.Account) error

	// Save writes the mutable fields of an existing account (password hash,
	// reset token digest and expiry) back to storage in one statement.
	Save(ctx context.Context, account *entity.Account) error
}
