package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/eight22lax/stringshop-backend/pkg/enums"
)

// OrderLineItem snapshots a purchased line at checkout time. Prices are
// denormalized from Stripe so later catalog edits never change an order.
type OrderLineItem struct {
	ID               uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID          uuid.UUID             `gorm:"column:order_id;type:uuid;not null;index"`
	PriceID          string                `gorm:"column:price_id;not null"`
	ProductName      string                `gorm:"column:product_name;not null"`
	Quantity         int                   `gorm:"column:quantity;not null;default:1"`
	UnitAmountCents  int64                 `gorm:"column:unit_amount_cents;not null;default:0"`
	TotalAmountCents int64                 `gorm:"column:total_amount_cents;not null;default:0"`
	Category         enums.ProductCategory `gorm:"column:category;not null;default:'service'"`
	CreatedAt        time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
