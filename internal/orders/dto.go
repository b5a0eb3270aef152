package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/eight22lax/stringshop-backend/pkg/db/models"
	"github.com/eight22lax/stringshop-backend/pkg/enums"
)

const (
	defaultListLimit = 25
	maxListLimit     = 100
)

// ListFilters describe the inputs supported by the admin order list.
type ListFilters struct {
	Status *enums.OrderStatus
	Query  string
	Limit  int
	Offset int
}

// LineItemView is the line item shape shared by public and admin reads.
type LineItemView struct {
	ProductName      string                `json:"product_name"`
	Quantity         int                   `json:"quantity"`
	UnitAmountCents  int64                 `json:"unit_amount_cents"`
	TotalAmountCents int64                 `json:"total_amount_cents"`
	Category         enums.ProductCategory `json:"category"`
}

// PublicOrder is the customer-facing order view looked up by pickup code. It
// deliberately omits contact details and Stripe identifiers.
type PublicOrder struct {
	PickupCode       string            `json:"pickup_code"`
	Status           enums.OrderStatus `json:"status"`
	ItemDescription  string            `json:"item_description"`
	OrderType        enums.OrderType   `json:"order_type"`
	AmountTotalCents int64             `json:"amount_total_cents"`
	Currency         string            `json:"currency"`
	Items            []LineItemView    `json:"items"`
	Timestamps       StatusTimestamps  `json:"timestamps"`
	CreatedAt        time.Time         `json:"created_at"`
}

// AdminOrder is the full order view for staff tooling.
type AdminOrder struct {
	ID               uuid.UUID         `json:"id"`
	StripeSessionID  string            `json:"stripe_session_id"`
	CustomerEmail    string            `json:"customer_email"`
	CustomerName     *string           `json:"customer_name,omitempty"`
	CustomerPhone    *string           `json:"customer_phone,omitempty"`
	ItemDescription  string            `json:"item_description"`
	OrderType        enums.OrderType   `json:"order_type"`
	AmountTotalCents int64             `json:"amount_total_cents"`
	Currency         string            `json:"currency"`
	PickupCode       string            `json:"pickup_code"`
	Status           enums.OrderStatus `json:"status"`
	Notes            *string           `json:"notes,omitempty"`
	Items            []LineItemView    `json:"items"`
	Timestamps       StatusTimestamps  `json:"timestamps"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// OrderList wraps the admin listing plus the total row count.
type OrderList struct {
	Orders []AdminOrder `json:"orders"`
	Total  int64        `json:"total"`
}

// StatusTimestamps surfaces the per-status entry times.
type StatusTimestamps struct {
	DroppedOffAt         *time.Time `json:"dropped_off_at,omitempty"`
	PickedUpAt           *time.Time `json:"picked_up_at,omitempty"`
	StringingAt          *time.Time `json:"stringing_at,omitempty"`
	StrungAt             *time.Time `json:"strung_at,omitempty"`
	ReadyForPickupAt     *time.Time `json:"ready_for_pickup_at,omitempty"`
	PickedUpByCustomerAt *time.Time `json:"picked_up_by_customer_at,omitempty"`
	ReviewAt             *time.Time `json:"review_at,omitempty"`
	CompletedAt          *time.Time `json:"completed_at,omitempty"`
}

func lineItemViews(items []models.OrderLineItem) []LineItemView {
	views := make([]LineItemView, 0, len(items))
	for _, item := range items {
		views = append(views, LineItemView{
			ProductName:      item.ProductName,
			Quantity:         item.Quantity,
			UnitAmountCents:  item.UnitAmountCents,
			TotalAmountCents: item.TotalAmountCents,
			Category:         item.Category,
		})
	}
	return views
}

func statusTimestamps(order *models.Order) StatusTimestamps {
	return StatusTimestamps{
		DroppedOffAt:         order.DroppedOffAt,
		PickedUpAt:           order.PickedUpAt,
		StringingAt:          order.StringingAt,
		StrungAt:             order.StrungAt,
		ReadyForPickupAt:     order.ReadyForPickupAt,
		PickedUpByCustomerAt: order.PickedUpByCustomerAt,
		ReviewAt:             order.ReviewAt,
		CompletedAt:          order.CompletedAt,
	}
}

func toPublicOrder(order *models.Order) *PublicOrder {
	return &PublicOrder{
		PickupCode:       order.PickupCode,
		Status:           order.Status,
		ItemDescription:  order.ItemDescription,
		OrderType:        order.OrderType,
		AmountTotalCents: order.AmountTotalCents,
		Currency:         order.Currency,
		Items:            lineItemViews(order.Items),
		Timestamps:       statusTimestamps(order),
		CreatedAt:        order.CreatedAt,
	}
}

func toAdminOrder(order *models.Order) AdminOrder {
	return AdminOrder{
		ID:               order.ID,
		StripeSessionID:  order.StripeSessionID,
		CustomerEmail:    order.CustomerEmail,
		CustomerName:     order.CustomerName,
		CustomerPhone:    order.CustomerPhone,
		ItemDescription:  order.ItemDescription,
		OrderType:        order.OrderType,
		AmountTotalCents: order.AmountTotalCents,
		Currency:         order.Currency,
		PickupCode:       order.PickupCode,
		Status:           order.Status,
		Notes:            order.Notes,
		Items:            lineItemViews(order.Items),
		Timestamps:       statusTimestamps(order),
		CreatedAt:        order.CreatedAt,
		UpdatedAt:        order.UpdatedAt,
	}
}
