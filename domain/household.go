package domain

import (
	"errors"
)

var (
	MessageSuccessGetHousehold      = "household retrieved successfully"
	MessageSuccessJoinHousehold     = "joined household successfully"
	MessageSuccessRotateInviteCode  = "invite code regenerated successfully"
	MessageFailedGetHousehold       = "failed to retrieve household"
	MessageFailedJoinHousehold      = "failed to join household"
	MessageFailedRotateInviteCode   = "failed to regenerate invite code"
	MessageFailedProvisionHousehold = "failed to provision household"

	ErrHouseholdNotFound  = errors.New("household not found")
	ErrNoMembership       = errors.New("user has no household membership")
	ErrAlreadyMember      = errors.New("user already belongs to a household")
	ErrInvalidInviteCode  = errors.New("invalid invite code")
	ErrTenantProvisioning = errors.New("household provisioning failed")
)

type (
	HouseholdResponse struct {
		ID               string   `json:"id"`
		Name             string   `json:"name"`
		InviteCode       string   `json:"invite_code"`
		Currency         string   `json:"currency"`
		Role             string   `json:"role"`
		StorageLocations []string `json:"storage_locations"`
	}

	JoinHouseholdRequest struct {
		InviteCode string `json:"invite_code" validate:"required"`
	}
)
