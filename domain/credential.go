package domain

import (
	"errors"
)

var (
	MessageSuccessStoreCredential  = "vision API key stored successfully"
	MessageSuccessDeleteCredential = "vision API key removed successfully"
	MessageFailedStoreCredential   = "failed to store vision API key"
	MessageFailedDeleteCredential  = "failed to remove vision API key"

	ErrCredentialNotFound = errors.New("no stored vision API key")
	ErrCredentialDecrypt  = errors.New("stored vision API key could not be decrypted")
)

type (
	UpsertCredentialRequest struct {
		APIKey string `json:"api_key" validate:"required,min=10"`
	}
)
