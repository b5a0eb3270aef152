package inventory

import (
	"context"

	"github.com/stripe/stripe-go/v84"

	pkgstripe "github.com/eight22lax/stringshop-backend/pkg/stripe"
)

// StripeCatalogClient exposes the subset of Stripe operations required by the
// inventory sync.
type StripeCatalogClient interface {
	ListActiveProducts(ctx context.Context) ([]*stripe.Product, error)
}

type stripeCatalogWrapper struct {
	api *stripe.Client
}

// NewStripeCatalogClient wraps the shared Stripe client so the inventory
// service can be tested. All calls go through the injected client; no
// package-level Stripe state is involved.
func NewStripeCatalogClient(client *pkgstripe.Client) StripeCatalogClient {
	if client == nil || client.API() == nil {
		return nil
	}
	return &stripeCatalogWrapper{api: client.API()}
}

func (w *stripeCatalogWrapper) ListActiveProducts(ctx context.Context) ([]*stripe.Product, error) {
	params := &stripe.ProductListParams{Active: stripe.Bool(true)}
	params.AddExpand("data.default_price")

	var products []*stripe.Product
	for prod, err := range w.api.V1Products.List(ctx, params) {
		if err != nil {
			return nil, err
		}
		products = append(products, prod)
	}
	return products, nil
}
