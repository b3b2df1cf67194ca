package domain

import (
	"errors"
	"time"
)

const (
	ItemStatusFresh     = "fresh"
	ItemStatusConsumed  = "consumed"
	ItemStatusDiscarded = "discarded"
)

var (
	MessageSuccessGetPantryItems    = "pantry items retrieved successfully"
	MessageSuccessUpdatePantryItem  = "pantry item updated successfully"
	MessageSuccessDeletePantryItem  = "pantry item deleted successfully"
	MessageSuccessMarkPantryItem    = "pantry item status updated successfully"
	MessageSuccessGetDashboardStats = "dashboard statistics retrieved successfully"

	MessageFailedGetPantryItems    = "failed to retrieve pantry items"
	MessageFailedUpdatePantryItem  = "failed to update pantry item"
	MessageFailedDeletePantryItem  = "failed to delete pantry item"
	MessageFailedMarkPantryItem    = "failed to update pantry item status"
	MessageFailedGetDashboardStats = "failed to retrieve dashboard statistics"

	ErrPantryItemNotFound = errors.New("pantry item not found")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrInvalidExpiryDate  = errors.New("invalid expiry date")
	ErrInvalidItemStatus  = errors.New("invalid item status")
)

type (
	PantryItemResponse struct {
		ID         string    `json:"id"`
		Name       string    `json:"name"`
		Category   string    `json:"category"`
		Quantity   int       `json:"quantity"`
		Unit       string    `json:"unit"`
		Location   string    `json:"location"`
		ExpiryDate time.Time `json:"expiry_date"`
		Status     string    `json:"status"`
		ImageURL   string    `json:"image_url,omitempty"`
		CreatedAt  time.Time `json:"created_at"`
	}

	UpdatePantryItemRequest struct {
		Name       string `json:"name" validate:"omitempty"`
		Category   string `json:"category" validate:"omitempty"`
		Quantity   int    `json:"quantity" validate:"omitempty,min=1"`
		Unit       string `json:"unit" validate:"omitempty"`
		Location   string `json:"location" validate:"omitempty,oneof=Pantry Fridge Freezer"`
		ExpiryDate string `json:"expiry_date" validate:"omitempty"`
	}

	MarkPantryItemRequest struct {
		ItemID string `json:"item_id" validate:"required,uuid"`
		Status string `json:"status" validate:"required,oneof=consumed discarded"`
	}

	DashboardStatsResponse struct {
		TotalItems    int `json:"total_items"`
		FreshItems    int `json:"fresh_items"`
		ExpiringItems int `json:"expiring_items"`
		ExpiredItems  int `json:"expired_items"`
		ConsumedItems int `json:"consumed_items"`
		WastedItems   int `json:"wasted_items"`
	}
)
