package credential

import (
	"context"
	"errors"
	"log"

	"github.com/AlexBuildsLTS/PantryAppAI-sub000/domain"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/entities"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// CredentialResolver yields the API key a vision request should use.
	// Resolution is read-only: (1) the user's own encrypted key if present and
	// decryptable, (2) the system-wide default, (3) domain.ErrCredentialMissing.
	CredentialResolver interface {
		Resolve(ctx context.Context, userID string) (string, error)
	}

	CredentialService interface {
		CredentialResolver
		StoreSecret(ctx context.Context, req domain.UpsertCredentialRequest, userID string) error
		DeleteSecret(ctx context.Context, userID string) error
	}

	credentialService struct {
		credentialRepository CredentialRepository
		systemKey            func() string
		aesKey               func() string
	}
)

func NewCredentialService(credentialRepository CredentialRepository) CredentialService {
	return &credentialService{
		credentialRepository: credentialRepository,
		systemKey:            func() string { return utils.GetConfig("GEMINI_API_KEY") },
		aesKey:               func() string { return utils.GetConfig("AES_KEY") },
	}
}

func (s *credentialService) Resolve(ctx context.Context, userID string) (string, error) {
	stored, err := s.credentialRepository.GetByUserID(ctx, userID)
	if err == nil {
		plain, decErr := utils.AESDecrypt(stored.Ciphertext, s.aesKey())
		if decErr == nil && plain != "" {
			return plain, nil
		}
		// An undecryptable stored key falls through to the system default
		// rather than failing the scan.
		log.Printf("stored credential for user %s unusable: %v", userID, decErr)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	if key := s.systemKey(); key != "" {
		return key, nil
	}

	return "", domain.ErrCredentialMissing
}

func (s *credentialService) StoreSecret(ctx context.Context, req domain.UpsertCredentialRequest, userID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}

	ciphertext, err := utils.AESEncrypt(req.APIKey, s.aesKey())
	if err != nil {
		return err
	}

	return s.credentialRepository.Upsert(ctx, &entities.UserCredential{
		ID:         uuid.New(),
		UserID:     userUUID,
		Ciphertext: ciphertext,
	})
}

func (s *credentialService) DeleteSecret(ctx context.Context, userID string) error {
	return s.credentialRepository.DeleteByUserID(ctx, userID)
}
