package household

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/AlexBuildsLTS/PantryAppAI-sub000/domain"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/entities"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/internal/utils/mailing"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/pkg/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var defaultStorageLocations = []string{
	domain.LocationPantry,
	domain.LocationFridge,
	domain.LocationFreezer,
}

type (
	HouseholdService interface {
		// EnsureMembership returns the household the user writes into,
		// provisioning household, owner membership, and the default storage
		// locations on first use. Idempotent: the membership check precedes
		// any creation, and re-entrant calls re-check rather than assume a
		// prior call's outcome.
		EnsureMembership(ctx context.Context, userID string) (string, bool, error)
		// RequireMembership resolves the household for reads and fails with
		// domain.ErrNoMembership instead of provisioning.
		RequireMembership(ctx context.Context, userID string) (string, string, error)
		GetMyHousehold(ctx context.Context, userID string) (domain.HouseholdResponse, error)
		JoinByInviteCode(ctx context.Context, req domain.JoinHouseholdRequest, userID string) (domain.HouseholdResponse, error)
		RotateInviteCode(ctx context.Context, userID string) (domain.HouseholdResponse, error)
	}

	householdService struct {
		householdRepository HouseholdRepository
		userRepository      user.UserRepository
	}
)

func NewHouseholdService(householdRepository HouseholdRepository, userRepository user.UserRepository) HouseholdService {
	return &householdService{
		householdRepository: householdRepository,
		userRepository:      userRepository,
	}
}

func (s *householdService) EnsureMembership(ctx context.Context, userID string) (string, bool, error) {
	member, err := s.householdRepository.GetMembershipByUserID(ctx, userID)
	if err == nil {
		return member.HouseholdID.String(), false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return "", false, domain.ErrParseUUID
	}

	owner, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", domain.ErrTenantProvisioning, err)
	}

	household := &entities.Household{
		ID:         uuid.New(),
		Name:       fmt.Sprintf("%s's Household", owner.Name),
		InviteCode: newInviteCode(),
		Currency:   "USD",
	}
	if err := s.householdRepository.CreateHousehold(ctx, household); err != nil {
		return "", false, fmt.Errorf("%w: %v", domain.ErrTenantProvisioning, err)
	}

	membership := &entities.HouseholdMember{
		ID:          uuid.New(),
		HouseholdID: household.ID,
		UserID:      userUUID,
		Role:        domain.RoleOwner,
	}
	if err := s.householdRepository.CreateMembership(ctx, membership); err != nil {
		return "", false, fmt.Errorf("%w: %v", domain.ErrTenantProvisioning, err)
	}

	for _, name := range defaultStorageLocations {
		location := &entities.StorageLocation{
			ID:          uuid.New(),
			HouseholdID: household.ID,
			Name:        name,
		}
		if err := s.householdRepository.CreateStorageLocation(ctx, location); err != nil {
			return "", false, fmt.Errorf("%w: %v", domain.ErrTenantProvisioning, err)
		}
	}

	go func(email, code string) {
		if email == "" {
			return
		}
		body := fmt.Sprintf(
			"<p>Your household is ready. Share invite code <b>%s</b> to let others join.</p>",
			code,
		)
		if err := mailing.SendMail(email, "Your household is ready", body); err != nil {
			log.Printf("household invite mail failed: %v", err)
		}
	}(owner.Email, household.InviteCode)

	return household.ID.String(), true, nil
}

func (s *householdService) RequireMembership(ctx context.Context, userID string) (string, string, error) {
	member, err := s.householdRepository.GetMembershipByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", domain.ErrNoMembership
		}
		return "", "", err
	}
	return member.HouseholdID.String(), member.Role, nil
}

func (s *householdService) GetMyHousehold(ctx context.Context, userID string) (domain.HouseholdResponse, error) {
	householdID, role, err := s.RequireMembership(ctx, userID)
	if err != nil {
		return domain.HouseholdResponse{}, err
	}

	household, err := s.householdRepository.GetHouseholdByID(ctx, householdID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.HouseholdResponse{}, domain.ErrHouseholdNotFound
		}
		return domain.HouseholdResponse{}, err
	}

	return s.toResponse(ctx, household, role)
}

func (s *householdService) JoinByInviteCode(ctx context.Context, req domain.JoinHouseholdRequest, userID string) (domain.HouseholdResponse, error) {
	if _, err := s.householdRepository.GetMembershipByUserID(ctx, userID); err == nil {
		return domain.HouseholdResponse{}, domain.ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.HouseholdResponse{}, err
	}

	household, err := s.householdRepository.GetHouseholdByInviteCode(ctx, strings.ToUpper(strings.TrimSpace(req.InviteCode)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.HouseholdResponse{}, domain.ErrInvalidInviteCode
		}
		return domain.HouseholdResponse{}, err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.HouseholdResponse{}, domain.ErrParseUUID
	}

	membership := &entities.HouseholdMember{
		ID:          uuid.New(),
		HouseholdID: household.ID,
		UserID:      userUUID,
		Role:        domain.RoleMember,
	}
	if err := s.householdRepository.CreateMembership(ctx, membership); err != nil {
		return domain.HouseholdResponse{}, err
	}

	return s.toResponse(ctx, household, domain.RoleMember)
}

func (s *householdService) RotateInviteCode(ctx context.Context, userID string) (domain.HouseholdResponse, error) {
	householdID, role, err := s.RequireMembership(ctx, userID)
	if err != nil {
		return domain.HouseholdResponse{}, err
	}
	if role != domain.RoleOwner {
		return domain.HouseholdResponse{}, domain.ErrUnauthorizedAccess
	}

	household, err := s.householdRepository.GetHouseholdByID(ctx, householdID)
	if err != nil {
		return domain.HouseholdResponse{}, err
	}

	household.InviteCode = newInviteCode()
	if err := s.householdRepository.UpdateHousehold(ctx, household); err != nil {
		return domain.HouseholdResponse{}, err
	}

	return s.toResponse(ctx, household, role)
}

func (s *householdService) toResponse(ctx context.Context, household *entities.Household, role string) (domain.HouseholdResponse, error) {
	locations, err := s.householdRepository.GetStorageLocations(ctx, household.ID.String())
	if err != nil {
		return domain.HouseholdResponse{}, err
	}

	locationNames := make([]string, 0, len(locations))
	for _, l := range locations {
		locationNames = append(locationNames, l.Name)
	}

	return domain.HouseholdResponse{
		ID:               household.ID.String(),
		Name:             household.Name,
		InviteCode:       household.InviteCode,
		Currency:         household.Currency,
		Role:             role,
		StorageLocations: locationNames,
	}, nil
}

func newInviteCode() string {
	return strings.ToUpper(strings.Split(uuid.NewString(), "-")[0])
}
