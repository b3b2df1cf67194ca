package household

import (
	"context"

	"github.com/AlexBuildsLTS/PantryAppAI-sub000/entities"
	"gorm.io/gorm"
)

type (
	HouseholdRepository interface {
		GetMembershipByUserID(ctx context.Context, userID string) (*entities.HouseholdMember, error)
		GetHouseholdByID(ctx context.Context, id string) (*entities.Household, error)
		GetHouseholdByInviteCode(ctx context.Context, inviteCode string) (*entities.Household, error)
		GetStorageLocations(ctx context.Context, householdID string) ([]*entities.StorageLocation, error)
		CreateHousehold(ctx context.Context, household *entities.Household) error
		CreateMembership(ctx context.Context, member *entities.HouseholdMember) error
		CreateStorageLocation(ctx context.Context, location *entities.StorageLocation) error
		UpdateHousehold(ctx context.Context, household *entities.Household) error
	}

	householdRepository struct {
		db *gorm.DB
	}
)

func NewHouseholdRepository(db *gorm.DB) HouseholdRepository {
	return &householdRepository{db: db}
}

func (r *householdRepository) GetMembershipByUserID(ctx context.Context, userID string) (*entities.HouseholdMember, error) {
	var member entities.HouseholdMember
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *householdRepository) GetHouseholdByID(ctx context.Context, id string) (*entities.Household, error) {
	var household entities.Household
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&household).Error; err != nil {
		return nil, err
	}
	return &household, nil
}

func (r *householdRepository) GetHouseholdByInviteCode(ctx context.Context, inviteCode string) (*entities.Household, error) {
	var household entities.Household
	if err := r.db.WithContext(ctx).Where("invite_code = ?", inviteCode).First(&household).Error; err != nil {
		return nil, err
	}
	return &household, nil
}

func (r *householdRepository) GetStorageLocations(ctx context.Context, householdID string) ([]*entities.StorageLocation, error) {
	var locations []*entities.StorageLocation
	if err := r.db.WithContext(ctx).
		Where("household_id = ?", householdID).
		Order("created_at asc").
		Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *householdRepository) CreateHousehold(ctx context.Context, household *entities.Household) error {
	return r.db.WithContext(ctx).Create(household).Error
}

func (r *householdRepository) CreateMembership(ctx context.Context, member *entities.HouseholdMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *householdRepository) CreateStorageLocation(ctx context.Context, location *entities.StorageLocation) error {
	return r.db.WithContext(ctx).Create(location).Error
}

func (r *householdRepository) UpdateHousehold(ctx context.Context, household *entities.Household) error {
	return r.db.WithContext(ctx).Save(household).Error
}
