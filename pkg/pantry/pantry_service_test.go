package pantry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AlexBuildsLTS/PantryAppAI-sub000/domain"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/entities"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePantryRepository struct {
	PantryRepository

	items  []*entities.PantryItem
	failOn string
}

func (r *fakePantryRepository) AddPantryItem(ctx context.Context, item *entities.PantryItem) error {
	if r.failOn != "" && item.Name == r.failOn {
		return errors.New("unique constraint violation")
	}
	r.items = append(r.items, item)
	return nil
}

type fakeHouseholdService struct {
	householdID string
	created     bool
	err         error
	ensureCalls int
}

func (h *fakeHouseholdService) EnsureMembership(ctx context.Context, userID string) (string, bool, error) {
	h.ensureCalls++
	if h.err != nil {
		return "", false, h.err
	}
	// Only the first call provisions; later ones find the membership.
	created := h.created && h.ensureCalls == 1
	return h.householdID, created, nil
}

func (h *fakeHouseholdService) RequireMembership(ctx context.Context, userID string) (string, string, error) {
	if h.err != nil {
		return "", "", h.err
	}
	return h.householdID, domain.RoleOwner, nil
}

func (h *fakeHouseholdService) GetMyHousehold(ctx context.Context, userID string) (domain.HouseholdResponse, error) {
	return domain.HouseholdResponse{}, nil
}

func (h *fakeHouseholdService) JoinByInviteCode(ctx context.Context, req domain.JoinHouseholdRequest, userID string) (domain.HouseholdResponse, error) {
	return domain.HouseholdResponse{}, nil
}

func (h *fakeHouseholdService) RotateInviteCode(ctx context.Context, userID string) (domain.HouseholdResponse, error) {
	return domain.HouseholdResponse{}, nil
}

type fakeInvalidator struct {
	keys []string
}

func (i *fakeInvalidator) Invalidate(ctx context.Context, keys ...string) error {
	i.keys = append(i.keys, keys...)
	return nil
}

func selectedMilk() domain.SelectedCandidate {
	return domain.SelectedCandidate{
		DetectionCandidate: domain.DetectionCandidate{
			Name:              "Milk",
			Category:          "Dairy",
			Confidence:        0.9,
			SuggestedLocation: domain.LocationFridge,
			EstimatedExpiry:   7,
		},
		Quantity: 2,
		Unit:     "liter",
	}
}

func newCommitFixture(repo *fakePantryRepository, households *fakeHouseholdService) (*pantryService, *fakeInvalidator, time.Time) {
	invalidator := &fakeInvalidator{}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := &pantryService{
		pantryRepository: repo,
		households:       households,
		invalidator:      invalidator,
		now:              func() time.Time { return now },
	}
	return svc, invalidator, now
}

func TestCommitCandidatesPersistsItems(t *testing.T) {
	repo := &fakePantryRepository{}
	households := &fakeHouseholdService{householdID: uuid.NewString(), created: true}
	svc, invalidator, now := newCommitFixture(repo, households)
	userID := uuid.NewString()

	bare := domain.SelectedCandidate{
		DetectionCandidate: domain.DetectionCandidate{
			Name:              "Bread",
			Category:          "Bakery",
			Confidence:        0.8,
			SuggestedLocation: domain.LocationPantry,
			EstimatedExpiry:   5,
		},
	}

	result, err := svc.CommitCandidates(context.Background(), userID, []domain.SelectedCandidate{selectedMilk(), bare}, "https://cdn/scan.jpg")
	require.NoError(t, err)

	assert.Equal(t, households.householdID, result.HouseholdID)
	assert.True(t, result.HouseholdCreated)
	require.Len(t, result.InsertedItems, 2)
	require.Len(t, repo.items, 2)

	milk := repo.items[0]
	assert.Equal(t, "Milk", milk.Name)
	assert.Equal(t, 2, milk.Quantity)
	assert.Equal(t, "liter", milk.Unit)
	assert.Equal(t, domain.LocationFridge, milk.Location)
	assert.Equal(t, now.AddDate(0, 0, 7), milk.ExpiryDate)
	assert.Equal(t, domain.ItemStatusFresh, milk.Status)
	assert.Equal(t, "https://cdn/scan.jpg", milk.ImageURL)
	assert.True(t, milk.AddedByScan)

	// Unspecified quantity and unit fall back to one piece.
	bread := repo.items[1]
	assert.Equal(t, 1, bread.Quantity)
	assert.Equal(t, "pcs", bread.Unit)

	assert.ElementsMatch(t, []string{
		"inventory:" + households.householdID,
		"dashboard-metrics:" + households.householdID,
	}, invalidator.keys)
}

func TestCommitCandidatesProvisionsTenantOnce(t *testing.T) {
	repo := &fakePantryRepository{}
	households := &fakeHouseholdService{householdID: uuid.NewString(), created: true}
	svc, _, _ := newCommitFixture(repo, households)
	userID := uuid.NewString()

	first, err := svc.CommitCandidates(context.Background(), userID, []domain.SelectedCandidate{selectedMilk()}, "")
	require.NoError(t, err)
	assert.True(t, first.HouseholdCreated)

	second, err := svc.CommitCandidates(context.Background(), userID, []domain.SelectedCandidate{selectedMilk()}, "")
	require.NoError(t, err)
	assert.False(t, second.HouseholdCreated)
	assert.Equal(t, first.HouseholdID, second.HouseholdID)
	assert.Equal(t, 2, households.ensureCalls)
}

func TestCommitCandidatesPartialFailureNamesItem(t *testing.T) {
	repo := &fakePantryRepository{failOn: "Eggs"}
	households := &fakeHouseholdService{householdID: uuid.NewString()}
	svc, _, _ := newCommitFixture(repo, households)
	userID := uuid.NewString()

	items := []domain.SelectedCandidate{
		selectedMilk(),
		{DetectionCandidate: domain.DetectionCandidate{Name: "Eggs", EstimatedExpiry: 21}},
		{DetectionCandidate: domain.DetectionCandidate{Name: "Rice", EstimatedExpiry: 180}},
	}

	result, err := svc.CommitCandidates(context.Background(), userID, items, "")
	require.Error(t, err)

	var commitErr *domain.CommitError
	require.ErrorAs(t, err, &commitErr)
	assert.Equal(t, "Eggs", commitErr.ItemName)

	// Rows inserted before the failure stay in place; the rest never ran.
	require.Len(t, repo.items, 1)
	assert.Equal(t, "Milk", repo.items[0].Name)
	require.Len(t, result.InsertedItems, 1)
	assert.Equal(t, "Milk", result.InsertedItems[0].Name)
}

func TestCommitCandidatesWithEmptySelection(t *testing.T) {
	households := &fakeHouseholdService{householdID: uuid.NewString()}
	svc, _, _ := newCommitFixture(&fakePantryRepository{}, households)

	_, err := svc.CommitCandidates(context.Background(), uuid.NewString(), nil, "")
	assert.ErrorIs(t, err, domain.ErrNoItemsSelected)
	assert.Equal(t, 0, households.ensureCalls)
}

func TestCommitCandidatesProvisioningFailure(t *testing.T) {
	repo := &fakePantryRepository{}
	households := &fakeHouseholdService{err: domain.ErrTenantProvisioning}
	svc, _, _ := newCommitFixture(repo, households)

	_, err := svc.CommitCandidates(context.Background(), uuid.NewString(), []domain.SelectedCandidate{selectedMilk()}, "")
	assert.ErrorIs(t, err, domain.ErrTenantProvisioning)
	assert.Empty(t, repo.items)
}
