package inventory

import (
	"context"

	"gorm.io/gorm"

	"github.com/eight22lax/stringshop-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an inventory repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repository) FindByPriceID(ctx context.Context, priceID string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.db.WithContext(ctx).
		Where("price_id = ?", priceID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) List(ctx context.Context, activeOnly bool) ([]models.InventoryItem, error) {
	query := r.db.WithContext(ctx).Model(&models.InventoryItem{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	var items []models.InventoryItem
	if err := query.Order("category ASC, name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) Update(ctx context.Context, priceID string, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("price_id = ?", priceID).
		Updates(updates).Error
}

func (r *repository) SetStock(ctx context.Context, priceID string, stock int) error {
	return r.Update(ctx, priceID, map[string]any{"stock": stock})
}

// DecrementStock subtracts qty atomically and clamps at zero so concurrent
// checkouts can never drive stock negative.
func (r *repository) DecrementStock(ctx context.Context, priceID string, qty int) error {
	if qty <= 0 {
		return nil
	}
	return r.db.WithContext(ctx).Exec(`
		UPDATE inventory_items
		SET stock = CASE WHEN stock > ? THEN stock - ? ELSE 0 END,
			updated_at = CURRENT_TIMESTAMP
		WHERE price_id = ?
	`, qty, qty, priceID).Error
}
