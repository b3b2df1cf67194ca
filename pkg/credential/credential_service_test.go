package credential

import (
	"context"
	"testing"

	"github.com/AlexBuildsLTS/PantryAppAI-sub000/domain"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/entities"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testAESKey = "unit-test-aes-key"

type memoryCredentialRepository struct {
	byUser map[string]*entities.UserCredential
}

func newMemoryCredentialRepository() *memoryCredentialRepository {
	return &memoryCredentialRepository{byUser: make(map[string]*entities.UserCredential)}
}

func (r *memoryCredentialRepository) GetByUserID(ctx context.Context, userID string) (*entities.UserCredential, error) {
	if c, ok := r.byUser[userID]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryCredentialRepository) Upsert(ctx context.Context, credential *entities.UserCredential) error {
	r.byUser[credential.UserID.String()] = credential
	return nil
}

func (r *memoryCredentialRepository) DeleteByUserID(ctx context.Context, userID string) error {
	delete(r.byUser, userID)
	return nil
}

func newTestService(repo CredentialRepository, systemKey string) *credentialService {
	return &credentialService{
		credentialRepository: repo,
		systemKey:            func() string { return systemKey },
		aesKey:               func() string { return testAESKey },
	}
}

func TestResolvePrefersStoredKey(t *testing.T) {
	repo := newMemoryCredentialRepository()
	svc := newTestService(repo, "system-key")
	userID := uuid.NewString()

	require.NoError(t, svc.StoreSecret(context.Background(), domain.UpsertCredentialRequest{APIKey: "user-key"}, userID))

	key, err := svc.Resolve(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "user-key", key)

	// The key never sits in the store as plaintext.
	stored := repo.byUser[userID]
	assert.NotContains(t, stored.Ciphertext, "user-key")
}

func TestResolveFallsBackToSystemKey(t *testing.T) {
	svc := newTestService(newMemoryCredentialRepository(), "system-key")

	key, err := svc.Resolve(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Equal(t, "system-key", key)
}

func TestResolveWithoutAnyKey(t *testing.T) {
	svc := newTestService(newMemoryCredentialRepository(), "")

	_, err := svc.Resolve(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrCredentialMissing)
}

func TestResolveUndecryptableStoredKeyFallsThrough(t *testing.T) {
	repo := newMemoryCredentialRepository()
	svc := newTestService(repo, "system-key")
	userID := uuid.New()

	// Encrypted under a different key; decryption will fail.
	ciphertext, err := utils.AESEncrypt("user-key", "some-other-aes-key")
	require.NoError(t, err)
	repo.byUser[userID.String()] = &entities.UserCredential{
		ID:         uuid.New(),
		UserID:     userID,
		Ciphertext: ciphertext,
	}

	key, err := svc.Resolve(context.Background(), userID.String())
	require.NoError(t, err)
	assert.Equal(t, "system-key", key)
}

func TestDeleteSecretRevertsToSystemKey(t *testing.T) {
	repo := newMemoryCredentialRepository()
	svc := newTestService(repo, "system-key")
	userID := uuid.NewString()

	require.NoError(t, svc.StoreSecret(context.Background(), domain.UpsertCredentialRequest{APIKey: "user-key"}, userID))
	require.NoError(t, svc.DeleteSecret(context.Background(), userID))

	key, err := svc.Resolve(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "system-key", key)
}

func TestStoreSecretOverwritesPreviousKey(t *testing.T) {
	repo := newMemoryCredentialRepository()
	svc := newTestService(repo, "")
	userID := uuid.NewString()

	require.NoError(t, svc.StoreSecret(context.Background(), domain.UpsertCredentialRequest{APIKey: "first"}, userID))
	require.NoError(t, svc.StoreSecret(context.Background(), domain.UpsertCredentialRequest{APIKey: "second"}, userID))

	key, err := svc.Resolve(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "second", key)
}
