package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eight22lax/stringshop-backend/pkg/db/models"
)

// Repository defines persistence operations for the orders tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateLineItems(ctx context.Context, items []models.OrderLineItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByPickupCode(ctx context.Context, pickupCode string) (*models.Order, error)
	FindByStripeSessionID(ctx context.Context, sessionID string) (*models.Order, error)
	List(ctx context.Context, filters ListFilters) ([]models.Order, int64, error)
	Update(ctx context.Context, orderID uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, orderID uuid.UUID) error
}
