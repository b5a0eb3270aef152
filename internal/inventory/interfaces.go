package inventory

import (
	"context"

	"gorm.io/gorm"

	"github.com/eight22lax/stringshop-backend/pkg/db/models"
)

// Repository defines persistence operations for the inventory table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error)
	FindByPriceID(ctx context.Context, priceID string) (*models.InventoryItem, error)
	List(ctx context.Context, activeOnly bool) ([]models.InventoryItem, error)
	Update(ctx context.Context, priceID string, updates map[string]any) error
	SetStock(ctx context.Context, priceID string, stock int) error
	DecrementStock(ctx context.Context, priceID string, qty int) error
}
