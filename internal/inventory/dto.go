package inventory

import (
	"github.com/eight22lax/stringshop-backend/pkg/db/models"
	"github.com/eight22lax/stringshop-backend/pkg/enums"
)

// ItemView is the inventory row shape returned by read paths.
type ItemView struct {
	PriceID     string                `json:"price_id"`
	ProductID   string                `json:"product_id"`
	Name        string                `json:"name"`
	Category    enums.ProductCategory `json:"category"`
	PriceCents  int64                 `json:"price_cents"`
	Stock       int                   `json:"stock"`
	Description *string               `json:"description,omitempty"`
	ImageURL    *string               `json:"image_url,omitempty"`
	PlayerType  *string               `json:"player_type,omitempty"`
	Active      bool                  `json:"active"`
}

// CategoryGroup bundles purchasable items under one category heading.
type CategoryGroup struct {
	Category enums.ProductCategory `json:"category"`
	Items    []ItemView            `json:"items"`
}

// StorefrontView is the public catalog: active items with stock on hand,
// grouped by category.
type StorefrontView struct {
	Categories []CategoryGroup `json:"categories"`
}

// SyncResult reports what a Stripe catalog sync changed.
type SyncResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

func toItemView(item *models.InventoryItem) ItemView {
	return ItemView{
		PriceID:     item.PriceID,
		ProductID:   item.ProductID,
		Name:        item.Name,
		Category:    item.Category,
		PriceCents:  item.PriceCents,
		Stock:       item.Stock,
		Description: item.Description,
		ImageURL:    item.ImageURL,
		PlayerType:  item.PlayerType,
		Active:      item.Active,
	}
}
