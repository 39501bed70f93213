package auth

import (
	"time"

	"github.com/google/uuid"
)

// Identity is a credential record. Everything else about a person lives on
// the profile that shares its ID.
type Identity struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex:uq_auth_users_email;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Identity) TableName() string { return "auth_users" }
