package credential

import (
	"context"

	"github.com/AlexBuildsLTS/PantryAppAI-sub000/entities"
	"gorm.io/gorm"
)

type (
	CredentialRepository interface {
		GetByUserID(ctx context.Context, userID string) (*entities.UserCredential, error)
		Upsert(ctx context.Context, credential *entities.UserCredential) error
		DeleteByUserID(ctx context.Context, userID string) error
	}

	credentialRepository struct {
		db *gorm.DB
	}
)

func NewCredentialRepository(db *gorm.DB) CredentialRepository {
	return &credentialRepository{db: db}
}

func (r *credentialRepository) GetByUserID(ctx context.Context, userID string) (*entities.UserCredential, error) {
	var credential entities.UserCredential
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&credential).Error; err != nil {
		return nil, err
	}
	return &credential, nil
}

func (r *credentialRepository) Upsert(ctx context.Context, credential *entities.UserCredential) error {
	var existing entities.UserCredential
	err := r.db.WithContext(ctx).Where("user_id = ?", credential.UserID).First(&existing).Error
	if err == nil {
		existing.Ciphertext = credential.Ciphertext
		return r.db.WithContext(ctx).Save(&existing).Error
	}
	return r.db.WithContext(ctx).Create(credential).Error
}

func (r *credentialRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entities.UserCredential{}).Error
}
