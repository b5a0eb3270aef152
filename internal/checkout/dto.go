package checkout

// Stripe metadata keys set at session creation and read back on completion.
const (
	metadataPickupCode = "pickupCode"
	metadataOrderType  = "orderType"
)

// CartLine is one storefront cart entry.
type CartLine struct {
	PriceID  string `json:"price_id" validate:"required"`
	Quantity int64  `json:"quantity" validate:"required,gt=0"`
}

// CreateSessionInput carries the storefront cart into Stripe checkout.
type CreateSessionInput struct {
	Items         []CartLine `json:"items" validate:"required,min=1,dive"`
	CustomerEmail string     `json:"customer_email" validate:"omitempty,email"`
	OrderType     string     `json:"order_type" validate:"omitempty,oneof=service product"`
}

// SessionView is returned to the storefront so it can redirect to Stripe.
type SessionView struct {
	SessionID  string `json:"session_id"`
	URL        string `json:"url"`
	PickupCode string `json:"pickup_code"`
}
