// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"credo/internal/domain/entity"
	domainerrors "credo/internal/domain/errors"
	"credo/internal/domain/repository"
	"credo/internal/infra/persistence/model"
)

// accountRepository implements the repository.AccountRepository interface.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// FindByEmail retrieves a single account by its normalized email address.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&accountM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toAccountDomain(&accountM), nil
}

// FindByResetTokenHash retrieves the account holding the given reset token digest.
func (repo *accountRepository) FindByResetTokenHash(ctx context.Context, digest string) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).
		Where("reset_token_hash = ?", digest).
		First(&accountM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toAccountDomain(&accountM), nil
}

// Insert persists a new account record.
func (repo *accountRepository) Insert(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateEmail
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidation.WrapMessage("missing required account fields")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to insert account")
	}

	// Update the entity with generated values.
	account.ID = accountM.ID
	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// Save writes the mutable fields of an existing account back to storage.
// Select lists the nullable columns explicitly so clearing the reset token
// digest and expiry actually writes NULLs instead of being skipped.
// updated_at stays in the list so GORM's update-time tracking still applies.
func (repo *accountRepository) Save(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	err := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ?", accountM.ID).
		Select("password_hash", "reset_token_hash", "reset_token_expiry", "updated_at").
		Updates(map[string]any{
			"password_hash":      accountM.PasswordHash,
			"reset_token_hash":   accountM.ResetTokenHash,
			"reset_token_expiry": accountM.ResetTokenExpiry,
		}).Error

	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save account")
	}

	return nil
}

// --- Mapper Functions ---

// toAccountDomain converts a GORM AccountModel to a domain Account entity.
func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	return &entity.Account{
		ID:               data.ID,
		Email:            data.Email,
		PasswordHash:     data.PasswordHash,
		ResetTokenHash:   data.ResetTokenHash,
		ResetTokenExpiry: data.ResetTokenExpiry,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}

// fromAccountDomain converts a domain Account entity to a GORM AccountModel.
func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	return &model.AccountModel{
		ID:               data.ID,
		Email:            data.Email,
		PasswordHash:     data.PasswordHash,
		ResetTokenHash:   data.ResetTokenHash,
		ResetTokenExpiry: data.ResetTokenExpiry,
	}
}
