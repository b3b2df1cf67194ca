package entities

import (
	"github.com/google/uuid"
)

// UserCredential stores a user's own vision API key, AES-GCM encrypted at rest.
type UserCredential struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID     uuid.UUID `gorm:"uniqueIndex" json:"user_id"`
	Ciphertext string    `gorm:"type:text" json:"-"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
