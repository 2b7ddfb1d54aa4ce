// Package model holds the GORM table mappings for the persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. PostgreSQL generates UUIDs via uuid_generate_v7().
// ResetTokenHash and ResetTokenExpiry are nullable and always written as a pair.
type AccountModel struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email            string     `gorm:"type:varchar(255);unique;not null"`
	PasswordHash     string     `gorm:"type:varchar(255);not null"`
	ResetTokenHash   *string    `gorm:"type:varchar(64);uniqueIndex"`
	ResetTokenExpiry *time.Time `gorm:""`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}
