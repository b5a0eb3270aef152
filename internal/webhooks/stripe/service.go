package stripewebhook

import (
	"context"
	"encoding/json"

	"github.com/stripe/stripe-go/v84"

	"github.com/eight22lax/stringshop-backend/internal/checkout"
	"github.com/eight22lax/stringshop-backend/pkg/db/models"
	pkgerrors "github.com/eight22lax/stringshop-backend/pkg/errors"
	"github.com/eight22lax/stringshop-backend/pkg/logger"
)

type checkoutService interface {
	CompleteCheckout(ctx context.Context, session *stripe.CheckoutSession) (*models.Order, error)
}

type ServiceParams struct {
	CheckoutService checkoutService
	StripeClient    checkout.StripeCheckoutClient
	Logger          *logger.Logger
}

type Service struct {
	checkout checkoutService
	stripe   checkout.StripeCheckoutClient
	logg     *logger.Logger
}

func NewService(params ServiceParams) (*Service, error) {
	if params.CheckoutService == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout service required")
	}
	return &Service{
		checkout: params.CheckoutService,
		stripe:   params.StripeClient,
		logg:     params.Logger,
	}, nil
}

// HandleEvent routes verified Stripe events. Only checkout.session.completed
// creates orders; every other event type is acknowledged and dropped.
func (s *Service) HandleEvent(ctx context.Context, event *stripe.Event) error {
	if event == nil || event.Data == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "stripe event data required")
	}

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode checkout session event")
		}
		return s.completeSession(ctx, &sess)
	default:
		return nil
	}
}

// completeSession re-fetches the session with line items expanded, since the
// event payload carries only the bare session object.
func (s *Service) completeSession(ctx context.Context, sess *stripe.CheckoutSession) error {
	if sess == nil || sess.ID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "checkout session id required")
	}

	expanded := sess
	if s.stripe != nil {
		fetched, err := s.stripe.RetrieveSession(ctx, sess.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch checkout session")
		}
		expanded = fetched
	}

	order, err := s.checkout.CompleteCheckout(ctx, expanded)
	if err != nil {
		return err
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithOrderID(ctx, order.ID.String()), "checkout session completed, order created")
	}
	return nil
}
