package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/eight22lax/stringshop-backend/pkg/enums"
)

// Order is the record created when a Stripe checkout session completes. The
// pickup code doubles as the customer-facing lookup key, so it must stay
// unique across live orders.
type Order struct {
	ID               uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StripeSessionID  string            `gorm:"column:stripe_session_id;uniqueIndex;not null"`
	CustomerEmail    string            `gorm:"column:customer_email;not null;index"`
	CustomerName     *string           `gorm:"column:customer_name"`
	CustomerPhone    *string           `gorm:"column:customer_phone"`
	ItemDescription  string            `gorm:"column:item_description;not null"`
	OrderType        enums.OrderType   `gorm:"column:order_type;not null;default:'service'"`
	AmountTotalCents int64             `gorm:"column:amount_total_cents;not null;default:0"`
	Currency         string            `gorm:"column:currency;not null;default:'usd'"`
	PickupCode       string            `gorm:"column:pickup_code;uniqueIndex;not null"`
	Status           enums.OrderStatus `gorm:"column:status;not null;default:'paid';index"`
	Notes            *string           `gorm:"column:notes"`

	DroppedOffAt         *time.Time `gorm:"column:dropped_off_at"`
	PickedUpAt           *time.Time `gorm:"column:picked_up_at"`
	StringingAt          *time.Time `gorm:"column:stringing_at"`
	StrungAt             *time.Time `gorm:"column:strung_at"`
	ReadyForPickupAt     *time.Time `gorm:"column:ready_for_pickup_at"`
	PickedUpByCustomerAt *time.Time `gorm:"column:picked_up_by_customer_at"`
	ReviewAt             *time.Time `gorm:"column:review_at"`
	CompletedAt          *time.Time `gorm:"column:completed_at"`

	Items []OrderLineItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TimestampFor returns a pointer to the timestamp field owned by the given
// status, or nil when the status has no timestamp column (paid and the legacy
// statuses).
func (o *Order) TimestampFor(status enums.OrderStatus) **time.Time {
	switch status {
	case enums.OrderStatusDroppedOff:
		return &o.DroppedOffAt
	case enums.OrderStatusPickedUp:
		return &o.PickedUpAt
	case enums.OrderStatusStringing:
		return &o.StringingAt
	case enums.OrderStatusStrung:
		return &o.StrungAt
	case enums.OrderStatusReadyForPickup:
		return &o.ReadyForPickupAt
	case enums.OrderStatusPickedUpByCustomer:
		return &o.PickedUpByCustomerAt
	case enums.OrderStatusReview:
		return &o.ReviewAt
	case enums.OrderStatusCompleted:
		return &o.CompletedAt
	default:
		return nil
	}
}
