package entities

import (
	"time"

	"github.com/google/uuid"
)

type PantryItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	HouseholdID uuid.UUID `json:"household_id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Quantity    int       `json:"quantity"`
	Unit        string    `json:"unit"`
	Location    string    `json:"location"` // "Pantry", "Fridge", "Freezer"
	ExpiryDate  time.Time `json:"expiry_date"`
	Status      string    `json:"status"` // "fresh", "consumed", "discarded"
	ImageURL    string    `json:"image_url,omitempty"`
	AddedByScan bool      `json:"added_by_scan"`

	Household *Household `gorm:"foreignKey:HouseholdID"`
	User      *User      `gorm:"foreignKey:UserID"`
	Timestamp
}
