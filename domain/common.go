package domain

import (
	"errors"
)

const (
	RoleOwner  = "owner"
	RoleMember = "member"
	RoleUser   = "user"
)

var (
	MessageFailedBodyRequest    = "failed to process request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "token invalid"

	ErrParseUUID          = errors.New("failed to parse UUID")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenNotFound      = errors.New("token not found")
	ErrUnauthorizedAccess = errors.New("unauthorized access to resource")
)
