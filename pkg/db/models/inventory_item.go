package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/eight22lax/stringshop-backend/pkg/enums"
)

// InventoryItem mirrors a Stripe price/product pair plus the locally owned
// stock counter. Stripe never sees stock levels.
type InventoryItem struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PriceID     string                `gorm:"column:price_id;uniqueIndex;not null"`
	ProductID   string                `gorm:"column:product_id;not null"`
	Name        string                `gorm:"column:name;not null"`
	Category    enums.ProductCategory `gorm:"column:category;not null;default:'service'"`
	PriceCents  int64                 `gorm:"column:price_cents;not null;default:0"`
	Stock       int                   `gorm:"column:stock;not null;default:0"`
	Description *string               `gorm:"column:description"`
	ImageURL    *string               `gorm:"column:image_url"`
	PlayerType  *string               `gorm:"column:player_type"`
	Active      bool                  `gorm:"column:active;not null;default:true"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
