package pantry

import (
	"context"
	"time"

	"github.com/AlexBuildsLTS/PantryAppAI-sub000/domain"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/entities"
	"gorm.io/gorm"
)

const expiryWarningDays = 3

type (
	PantryRepository interface {
		AddPantryItem(ctx context.Context, item *entities.PantryItem) error
		GetPantryItemByID(ctx context.Context, id string) (*entities.PantryItem, error)
		UpdatePantryItem(ctx context.Context, item *entities.PantryItem) error
		DeletePantryItem(ctx context.Context, id string) error
		GetPantryItems(ctx context.Context, householdID string, status string, page, limit int) ([]*entities.PantryItem, int64, error)
		MarkPantryItemStatus(ctx context.Context, id string, status string) error
		GetDashboardStats(ctx context.Context, householdID string) (domain.DashboardStatsResponse, error)
	}

	pantryRepository struct {
		db *gorm.DB
	}
)

func NewPantryRepository(db *gorm.DB) PantryRepository {
	return &pantryRepository{db: db}
}

func (r *pantryRepository) AddPantryItem(ctx context.Context, item *entities.PantryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *pantryRepository) GetPantryItemByID(ctx context.Context, id string) (*entities.PantryItem, error) {
	var item entities.PantryItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *pantryRepository) UpdatePantryItem(ctx context.Context, item *entities.PantryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *pantryRepository) DeletePantryItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.PantryItem{}).Error
}

func (r *pantryRepository) GetPantryItems(ctx context.Context, householdID string, status string, page, limit int) ([]*entities.PantryItem, int64, error) {
	var items []*entities.PantryItem
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Where("household_id = ?", householdID)

	if status != "all" && status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Model(&entities.PantryItem{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("expiry_date asc").Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, count, nil
}

func (r *pantryRepository) MarkPantryItemStatus(ctx context.Context, id string, status string) error {
	return r.db.WithContext(ctx).Model(&entities.PantryItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status}).Error
}

func (r *pantryRepository) GetDashboardStats(ctx context.Context, householdID string) (domain.DashboardStatsResponse, error) {
	var total, expiring, expired, consumed, discarded int64

	now := time.Now()
	warning := now.AddDate(0, 0, expiryWarningDays)

	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&entities.PantryItem{}).
			Where("household_id = ?", householdID)
	}

	if err := base().Where("status = ?", domain.ItemStatusFresh).Count(&total).Error; err != nil {
		return domain.DashboardStatsResponse{}, err
	}

	if err := base().Where("status = ? AND expiry_date BETWEEN ? AND ?",
		domain.ItemStatusFresh, now, warning).Count(&expiring).Error; err != nil {
		return domain.DashboardStatsResponse{}, err
	}

	if err := base().Where("status = ? AND expiry_date < ?",
		domain.ItemStatusFresh, now).Count(&expired).Error; err != nil {
		return domain.DashboardStatsResponse{}, err
	}

	if err := base().Where("status = ?", domain.ItemStatusConsumed).Count(&consumed).Error; err != nil {
		return domain.DashboardStatsResponse{}, err
	}

	if err := base().Where("status = ?", domain.ItemStatusDiscarded).Count(&discarded).Error; err != nil {
		return domain.DashboardStatsResponse{}, err
	}

	return domain.DashboardStatsResponse{
		TotalItems:    int(total),
		FreshItems:    int(total - expiring - expired),
		ExpiringItems: int(expiring),
		ExpiredItems:  int(expired),
		ConsumedItems: int(consumed),
		WastedItems:   int(discarded + expired),
	}, nil
}
