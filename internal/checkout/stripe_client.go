package checkout

import (
	"context"

	"github.com/stripe/stripe-go/v84"

	pkgstripe "github.com/eight22lax/stringshop-backend/pkg/stripe"
)

// StripeCheckoutClient exposes the subset of Stripe operations required by the
// checkout service.
type StripeCheckoutClient interface {
	RetrieveSession(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error)
	CreateSession(ctx context.Context, params *stripe.CheckoutSessionCreateParams) (*stripe.CheckoutSession, error)
}

type stripeCheckoutWrapper struct {
	api *stripe.Client
}

// NewStripeCheckoutClient wraps the shared Stripe client so the checkout
// service can be tested. All calls go through the injected client; no
// package-level Stripe state is involved.
func NewStripeCheckoutClient(client *pkgstripe.Client) StripeCheckoutClient {
	if client == nil || client.API() == nil {
		return nil
	}
	return &stripeCheckoutWrapper{api: client.API()}
}

func (w *stripeCheckoutWrapper) RetrieveSession(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionRetrieveParams{}
	params.AddExpand("line_items.data.price.product")
	return w.api.V1CheckoutSessions.Retrieve(ctx, sessionID, params)
}

func (w *stripeCheckoutWrapper) CreateSession(ctx context.Context, params *stripe.CheckoutSessionCreateParams) (*stripe.CheckoutSession, error) {
	return w.api.V1CheckoutSessions.Create(ctx, params)
}
