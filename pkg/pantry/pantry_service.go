package pantry

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/AlexBuildsLTS/PantryAppAI-sub000/domain"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/entities"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/pkg/cache"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/pkg/household"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// Committer is the write half of the pipeline: curated candidates in,
	// persisted inventory rows out.
	Committer interface {
		CommitCandidates(ctx context.Context, userID string, items []domain.SelectedCandidate, imageURL string) (domain.CommitResult, error)
	}

	PantryService interface {
		Committer
		GetPantryItems(ctx context.Context, userID string, status string, page, limit int) ([]domain.PantryItemResponse, int64, error)
		GetPantryItemByID(ctx context.Context, id string, userID string) (domain.PantryItemResponse, error)
		UpdatePantryItem(ctx context.Context, id string, req domain.UpdatePantryItemRequest, userID string) error
		DeletePantryItem(ctx context.Context, id string, userID string) error
		MarkPantryItem(ctx context.Context, req domain.MarkPantryItemRequest, userID string) error
		GetDashboardStats(ctx context.Context, userID string) (domain.DashboardStatsResponse, error)
	}

	pantryService struct {
		pantryRepository PantryRepository
		households       household.HouseholdService
		invalidator      cache.Invalidator
		now              func() time.Time
	}
)

func NewPantryService(pantryRepository PantryRepository, households household.HouseholdService, invalidator cache.Invalidator) PantryService {
	return &pantryService{
		pantryRepository: pantryRepository,
		households:       households,
		invalidator:      invalidator,
		now:              time.Now,
	}
}

// CommitCandidates runs the two-phase commit: tenant resolution, then item
// insertion. The phases are not wrapped in a single transaction; an insertion
// failure leaves earlier rows in place and surfaces a CommitError naming the
// failed item so the user can retry knowingly.
func (s *pantryService) CommitCandidates(ctx context.Context, userID string, items []domain.SelectedCandidate, imageURL string) (domain.CommitResult, error) {
	if len(items) == 0 {
		return domain.CommitResult{}, domain.ErrNoItemsSelected
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.CommitResult{}, domain.ErrParseUUID
	}

	householdID, created, err := s.households.EnsureMembership(ctx, userID)
	if err != nil {
		return domain.CommitResult{}, err
	}

	householdUUID, err := uuid.Parse(householdID)
	if err != nil {
		return domain.CommitResult{}, domain.ErrParseUUID
	}

	result := domain.CommitResult{
		HouseholdID:      householdID,
		HouseholdCreated: created,
		InsertedItems:    make([]domain.PantryItemResponse, 0, len(items)),
	}

	now := s.now()
	for _, item := range items {
		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}

		unit := item.Unit
		if unit == "" {
			unit = "pcs"
		}

		entity := &entities.PantryItem{
			ID:          uuid.New(),
			HouseholdID: householdUUID,
			UserID:      userUUID,
			Name:        item.Name,
			Category:    item.Category,
			Quantity:    quantity,
			Unit:        unit,
			Location:    item.SuggestedLocation,
			ExpiryDate:  now.AddDate(0, 0, item.EstimatedExpiry),
			Status:      domain.ItemStatusFresh,
			ImageURL:    imageURL,
			AddedByScan: true,
		}

		if err := s.pantryRepository.AddPantryItem(ctx, entity); err != nil {
			return result, &domain.CommitError{ItemName: item.Name, Err: err}
		}

		result.InsertedItems = append(result.InsertedItems, toItemResponse(entity))
	}

	if err := s.invalidator.Invalidate(ctx,
		cache.InventoryKey(householdID),
		cache.DashboardMetricsKey(householdID),
	); err != nil {
		log.Printf("cache invalidation failed for household %s: %v", householdID, err)
	}

	return result, nil
}

func (s *pantryService) GetPantryItems(ctx context.Context, userID string, status string, page, limit int) ([]domain.PantryItemResponse, int64, error) {
	householdID, _, err := s.households.RequireMembership(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	items, count, err := s.pantryRepository.GetPantryItems(ctx, householdID, status, page, limit)
	if err != nil {
		return nil, 0, err
	}

	response := make([]domain.PantryItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toItemResponse(item))
	}

	return response, count, nil
}

func (s *pantryService) GetPantryItemByID(ctx context.Context, id string, userID string) (domain.PantryItemResponse, error) {
	item, err := s.requireItem(ctx, id, userID)
	if err != nil {
		return domain.PantryItemResponse{}, err
	}
	return toItemResponse(item), nil
}

func (s *pantryService) UpdatePantryItem(ctx context.Context, id string, req domain.UpdatePantryItemRequest, userID string) error {
	item, err := s.requireItem(ctx, id, userID)
	if err != nil {
		return err
	}

	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Category != "" {
		item.Category = req.Category
	}
	if req.Quantity > 0 {
		item.Quantity = req.Quantity
	}
	if req.Unit != "" {
		item.Unit = req.Unit
	}
	if req.Location != "" {
		item.Location = req.Location
	}
	if req.ExpiryDate != "" {
		expiryDate, err := time.Parse("2006-01-02", req.ExpiryDate)
		if err != nil {
			return domain.ErrInvalidExpiryDate
		}
		item.ExpiryDate = expiryDate
	}

	if err := s.pantryRepository.UpdatePantryItem(ctx, item); err != nil {
		return err
	}

	return s.invalidateHousehold(ctx, item.HouseholdID.String())
}

func (s *pantryService) DeletePantryItem(ctx context.Context, id string, userID string) error {
	item, err := s.requireItem(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.pantryRepository.DeletePantryItem(ctx, id); err != nil {
		return err
	}

	return s.invalidateHousehold(ctx, item.HouseholdID.String())
}

func (s *pantryService) MarkPantryItem(ctx context.Context, req domain.MarkPantryItemRequest, userID string) error {
	item, err := s.requireItem(ctx, req.ItemID, userID)
	if err != nil {
		return err
	}

	if req.Status != domain.ItemStatusConsumed && req.Status != domain.ItemStatusDiscarded {
		return domain.ErrInvalidItemStatus
	}

	if err := s.pantryRepository.MarkPantryItemStatus(ctx, req.ItemID, req.Status); err != nil {
		return err
	}

	return s.invalidateHousehold(ctx, item.HouseholdID.String())
}

func (s *pantryService) GetDashboardStats(ctx context.Context, userID string) (domain.DashboardStatsResponse, error) {
	householdID, _, err := s.households.RequireMembership(ctx, userID)
	if err != nil {
		return domain.DashboardStatsResponse{}, err
	}
	return s.pantryRepository.GetDashboardStats(ctx, householdID)
}

// requireItem loads an item and checks the caller belongs to its household.
func (s *pantryService) requireItem(ctx context.Context, id string, userID string) (*entities.PantryItem, error) {
	item, err := s.pantryRepository.GetPantryItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPantryItemNotFound
		}
		return nil, err
	}

	householdID, _, err := s.households.RequireMembership(ctx, userID)
	if err != nil {
		return nil, err
	}
	if item.HouseholdID.String() != householdID {
		return nil, domain.ErrUnauthorizedAccess
	}

	return item, nil
}

func (s *pantryService) invalidateHousehold(ctx context.Context, householdID string) error {
	if err := s.invalidator.Invalidate(ctx,
		cache.InventoryKey(householdID),
		cache.DashboardMetricsKey(householdID),
	); err != nil {
		log.Printf("cache invalidation failed for household %s: %v", householdID, err)
	}
	return nil
}

func toItemResponse(item *entities.PantryItem) domain.PantryItemResponse {
	return domain.PantryItemResponse{
		ID:         item.ID.String(),
		Name:       item.Name,
		Category:   item.Category,
		Quantity:   item.Quantity,
		Unit:       item.Unit,
		Location:   item.Location,
		ExpiryDate: item.ExpiryDate,
		Status:     item.Status,
		ImageURL:   item.ImageURL,
		CreatedAt:  item.CreatedAt,
	}
}
