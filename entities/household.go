package entities

import (
	"github.com/google/uuid"
)

type Household struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name       string    `json:"name"`
	InviteCode string    `gorm:"uniqueIndex" json:"invite_code"`
	Currency   string    `json:"currency"`

	Members          []*HouseholdMember `gorm:"foreignKey:HouseholdID"`
	StorageLocations []*StorageLocation `gorm:"foreignKey:HouseholdID"`
	Timestamp
}

type HouseholdMember struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	HouseholdID uuid.UUID `json:"household_id"`
	UserID      uuid.UUID `gorm:"uniqueIndex" json:"user_id"`
	Role        string    `json:"role"` // "owner", "member"

	Household *Household `gorm:"foreignKey:HouseholdID"`
	User      *User      `gorm:"foreignKey:UserID"`
	Timestamp
}

type StorageLocation struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	HouseholdID uuid.UUID `json:"household_id"`
	Name        string    `json:"name"` // "Pantry", "Fridge", "Freezer"

	Household *Household `gorm:"foreignKey:HouseholdID"`
	Timestamp
}
