package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"credo/internal/domain/entity"
)

// newDryRunDB opens a gorm handle that builds SQL without touching a server,
// and captures the statement produced by update calls.
func newDryRunDB(t *testing.T) (*gorm.DB, *string) {
	t.Helper()

	db, err := gorm.Open(pgdriver.New(pgdriver.Config{
		DSN: "host=localhost user=credo dbname=credo",
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	var captured string
	err = db.Callback().Update().After("gorm:update").Register("capture_update_sql", func(tx *gorm.DB) {
		captured = tx.Statement.SQL.String()
	})
	require.NoError(t, err)

	return db, &captured
}

func TestAccountRepository_SaveWritesAllMutableColumns(t *testing.T) {
	db, captured := newDryRunDB(t)
	repo := NewAccountRepository(db)

	expiry := time.Now().Add(time.Hour)
	account := &entity.Account{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		PasswordHash: "new_hash",
	}
	account.SetPendingReset("digest123", expiry)

	require.NoError(t, repo.Save(context.Background(), account))

	assert.Contains(t, *captured, `"password_hash"`)
	assert.Contains(t, *captured, `"reset_token_hash"`)
	assert.Contains(t, *captured, `"reset_token_expiry"`)
	// The update-time column is touched on every save, so a password change
	// is visible in updated_at.
	assert.Contains(t, *captured, `"updated_at"`)
	assert.Contains(t, *captured, `WHERE id =`)
}

func TestAccountRepository_SaveClearsResetColumns(t *testing.T) {
	db, captured := newDryRunDB(t)
	repo := NewAccountRepository(db)

	account := &entity.Account{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		PasswordHash: "new_hash",
	}
	account.ClearPendingReset()

	require.NoError(t, repo.Save(context.Background(), account))

	// Nil digest and expiry still appear in the statement, so consuming a
	// reset token writes real NULLs instead of skipping the columns.
	assert.Contains(t, *captured, `"reset_token_hash"`)
	assert.Contains(t, *captured, `"reset_token_expiry"`)
}
