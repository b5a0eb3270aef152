package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/eight22lax/stringshop-backend/pkg/db/models"
	"github.com/eight22lax/stringshop-backend/pkg/enums"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  stripe_session_id TEXT NOT NULL UNIQUE,
  customer_email TEXT NOT NULL,
  customer_name TEXT,
  customer_phone TEXT,
  item_description TEXT NOT NULL,
  order_type TEXT NOT NULL DEFAULT 'service',
  amount_total_cents INTEGER NOT NULL DEFAULT 0,
  currency TEXT NOT NULL DEFAULT 'usd',
  pickup_code TEXT NOT NULL UNIQUE,
  status TEXT NOT NULL DEFAULT 'paid',
  notes TEXT,
  dropped_off_at DATETIME,
  picked_up_at DATETIME,
  stringing_at DATETIME,
  strung_at DATETIME,
  ready_for_pickup_at DATETIME,
  picked_up_by_customer_at DATETIME,
  review_at DATETIME,
  completed_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	lineItems := `
CREATE TABLE IF NOT EXISTS order_line_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  price_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1,
  unit_amount_cents INTEGER NOT NULL DEFAULT 0,
  total_amount_cents INTEGER NOT NULL DEFAULT 0,
  category TEXT NOT NULL DEFAULT 'service',
  created_at DATETIME,
  updated_at DATETIME
);`

	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(lineItems).Error)
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, mutate func(*models.Order)) *models.Order {
	t.Helper()

	order := &models.Order{
		ID:              uuid.New(),
		StripeSessionID: "cs_test_" + uuid.NewString(),
		CustomerEmail:   "player@example.com",
		ItemDescription: "Mid Pocket Restring",
		OrderType:       enums.OrderTypeService,
		Currency:        "usd",
		PickupCode:      randomPickupCode(t, db),
		Status:          enums.OrderStatusPaid,
	}
	if mutate != nil {
		mutate(order)
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func randomPickupCode(t *testing.T, db *gorm.DB) string {
	t.Helper()
	for i := 0; i < 100; i++ {
		code := uuid.NewString()[:4]
		var count int64
		require.NoError(t, db.Model(&models.Order{}).Where("pickup_code = ?", code).Count(&count).Error)
		if count == 0 {
			return code
		}
	}
	t.Fatal("could not produce unused pickup code")
	return ""
}

func TestRepository_CreateAndFind(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := seedOrder(t, db, func(o *models.Order) { o.PickupCode = "4821" })
	require.NoError(t, repo.CreateLineItems(ctx, []models.OrderLineItem{
		{
			ID:               uuid.New(),
			OrderID:          order.ID,
			PriceID:          "price_123",
			ProductName:      "Mid Pocket Restring",
			Quantity:         1,
			UnitAmountCents:  4500,
			TotalAmountCents: 4500,
			Category:         enums.ProductCategoryService,
		},
	}))

	byCode, err := repo.FindByPickupCode(ctx, "4821")
	require.NoError(t, err)
	assert.Equal(t, order.ID, byCode.ID)
	require.Len(t, byCode.Items, 1)
	assert.Equal(t, "Mid Pocket Restring", byCode.Items[0].ProductName)

	bySession, err := repo.FindByStripeSessionID(ctx, order.StripeSessionID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, bySession.ID)

	_, err = repo.FindByPickupCode(ctx, "0000")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_UniquePickupCode(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedOrder(t, db, func(o *models.Order) { o.PickupCode = "4821" })

	_, err := repo.Create(ctx, &models.Order{
		ID:              uuid.New(),
		StripeSessionID: "cs_test_other",
		CustomerEmail:   "other@example.com",
		ItemDescription: "Order",
		PickupCode:      "4821",
		Status:          enums.OrderStatusPaid,
	})
	require.Error(t, err)
}

func TestRepository_UniqueStripeSession(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	first := seedOrder(t, db, nil)

	_, err := repo.Create(ctx, &models.Order{
		ID:              uuid.New(),
		StripeSessionID: first.StripeSessionID,
		CustomerEmail:   "other@example.com",
		ItemDescription: "Order",
		PickupCode:      "9911",
		Status:          enums.OrderStatusPaid,
	})
	require.Error(t, err)
}

func TestRepository_ListFilters(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedOrder(t, db, func(o *models.Order) {
		o.PickupCode = "1001"
		o.Status = enums.OrderStatusPaid
	})
	seedOrder(t, db, func(o *models.Order) {
		o.PickupCode = "1002"
		o.Status = enums.OrderStatusStringing
		o.CustomerEmail = "goalie@example.com"
	})

	status := enums.OrderStatusStringing
	rows, total, err := repo.List(ctx, ListFilters{Status: &status})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, enums.OrderStatusStringing, rows[0].Status)

	rows, total, err = repo.List(ctx, ListFilters{Query: "goalie"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "goalie@example.com", rows[0].CustomerEmail)

	rows, total, err = repo.List(ctx, ListFilters{Query: "1001"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "1001", rows[0].PickupCode)
}

func TestRepository_UpdateClearsTimestamps(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	order := seedOrder(t, db, func(o *models.Order) {
		o.Status = enums.OrderStatusStrung
		o.StringingAt = &now
		o.StrungAt = &now
	})

	require.NoError(t, repo.Update(ctx, order.ID, map[string]any{
		"status":       enums.OrderStatusStringing,
		"stringing_at": now,
		"strung_at":    nil,
	}))

	fresh, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusStringing, fresh.Status)
	assert.Nil(t, fresh.StrungAt)
	require.NotNil(t, fresh.StringingAt)
}

func TestRepository_Delete(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := seedOrder(t, db, nil)
	require.NoError(t, repo.Delete(ctx, order.ID))

	_, err := repo.FindByID(ctx, order.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
