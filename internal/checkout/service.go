package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"github.com/stripe/stripe-go/v84"
	"gorm.io/gorm"

	"github.com/eight22lax/stringshop-backend/internal/inventory"
	"github.com/eight22lax/stringshop-backend/internal/orders"
	"github.com/eight22lax/stringshop-backend/pkg/config"
	pkgdb "github.com/eight22lax/stringshop-backend/pkg/db"
	"github.com/eight22lax/stringshop-backend/pkg/db/models"
	"github.com/eight22lax/stringshop-backend/pkg/enums"
	pkgerrors "github.com/eight22lax/stringshop-backend/pkg/errors"
	"github.com/eight22lax/stringshop-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service turns completed Stripe checkout sessions into orders and creates
// new sessions for the storefront cart.
type Service interface {
	CompleteCheckout(ctx context.Context, session *stripe.CheckoutSession) (*models.Order, error)
	CreateSession(ctx context.Context, input CreateSessionInput) (*SessionView, error)
	CreateTestOrder(ctx context.Context) (*models.Order, error)
}

// ServiceParams bundles the checkout service dependencies.
type ServiceParams struct {
	OrdersRepo    orders.Repository
	InventoryRepo inventory.Repository
	Tx            txRunner
	Stripe        StripeCheckoutClient
	Checkout      config.CheckoutConfig
	Logger        *logger.Logger
}

type service struct {
	orders    orders.Repository
	inventory inventory.Repository
	tx        txRunner
	stripe    StripeCheckoutClient
	cfg       config.CheckoutConfig
	logg      *logger.Logger
	newCode   func() string
}

// NewService builds a checkout service with the required dependencies. The
// Stripe client is optional so the webhook path can run without it in tests.
func NewService(params ServiceParams) (Service, error) {
	if params.OrdersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.InventoryRepo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		orders:    params.OrdersRepo,
		inventory: params.InventoryRepo,
		tx:        params.Tx,
		stripe:    params.Stripe,
		cfg:       params.Checkout,
		logg:      params.Logger,
		newCode:   randomPickupCode,
	}, nil
}

type lineDraft struct {
	priceID string
	name    string
	qty     int
	unit    int64
	total   int64
}

type orderDraft struct {
	order models.Order
	lines []lineDraft
}

// CompleteCheckout creates the order for a finished Stripe session. It is
// idempotent on the session id: replays return the already-created order.
func (s *service) CompleteCheckout(ctx context.Context, sess *stripe.CheckoutSession) (*models.Order, error) {
	if sess == nil || sess.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "checkout session required")
	}

	email := sessionEmail(sess)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "checkout session has no customer email")
	}

	if existing, err := s.orders.FindByStripeSessionID(ctx, sess.ID); err == nil {
		if s.logg != nil {
			s.logg.Info(s.logg.WithField(ctx, "stripe_session_id", sess.ID), "checkout session replayed, returning existing order")
		}
		return existing, nil
	} else if err != gorm.ErrRecordNotFound {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup order by session")
	}

	draft := draftFromSession(sess, email)

	preferred := strings.TrimSpace(sess.Metadata[metadataPickupCode])
	if !isPickupCode(preferred) {
		preferred = ""
	}

	order, err := s.allocateOrder(ctx, draft, preferred)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func draftFromSession(sess *stripe.CheckoutSession, email string) *orderDraft {
	var lines []lineDraft
	var names []string
	if sess.LineItems != nil {
		for _, item := range sess.LineItems.Data {
			if item == nil {
				continue
			}
			line := lineDraft{
				name:  item.Description,
				qty:   int(item.Quantity),
				total: item.AmountTotal,
			}
			if item.Price != nil {
				line.priceID = item.Price.ID
				line.unit = item.Price.UnitAmount
				if line.name == "" && item.Price.Product != nil {
					line.name = item.Price.Product.Name
				}
			}
			if line.name == "" {
				line.name = "Unknown"
			}
			if line.qty <= 0 {
				line.qty = 1
			}
			names = append(names, line.name)
			lines = append(lines, line)
		}
	}

	description := strings.Join(names, ", ")
	if description == "" {
		description = "Order"
	}

	currency := string(sess.Currency)
	if currency == "" {
		currency = "usd"
	}

	order := models.Order{
		StripeSessionID:  sess.ID,
		CustomerEmail:    email,
		ItemDescription:  description,
		OrderType:        enums.OrderTypeOrDefault(sess.Metadata[metadataOrderType]),
		AmountTotalCents: sess.AmountTotal,
		Currency:         currency,
		Status:           enums.OrderStatusPaid,
	}
	if sess.CustomerDetails != nil {
		if name := sess.CustomerDetails.Name; name != "" {
			order.CustomerName = &name
		}
		if phone := sess.CustomerDetails.Phone; phone != "" {
			order.CustomerPhone = &phone
		}
	}

	return &orderDraft{order: order, lines: lines}
}

func sessionEmail(sess *stripe.CheckoutSession) string {
	if sess.CustomerDetails != nil && sess.CustomerDetails.Email != "" {
		return sess.CustomerDetails.Email
	}
	return sess.CustomerEmail
}

// allocateOrder inserts the draft under a unique pickup code. A code carried
// in session metadata is tried first; collisions fall back to fresh codes
// with a bounded number of attempts.
func (s *service) allocateOrder(ctx context.Context, draft *orderDraft, preferred string) (*models.Order, error) {
	if preferred != "" {
		order, err := s.insertDraft(ctx, draft, preferred)
		switch {
		case err == nil:
			return order, nil
		case isSessionConflict(err):
			return s.reloadExisting(ctx, draft.order.StripeSessionID)
		case isPickupCodeConflict(err):
			// preferred code already taken by a live order, fall through
		default:
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
	}

	var order *models.Order
	var replayed bool
	backoff := retry.WithMaxRetries(maxPickupCodeAttempts-1, retry.NewConstant(time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		created, err := s.insertDraft(ctx, draft, s.newCode())
		switch {
		case err == nil:
			order = created
			return nil
		case isSessionConflict(err):
			replayed = true
			return nil
		case isPickupCodeConflict(err):
			return retry.RetryableError(err)
		default:
			return err
		}
	})
	if err != nil {
		if isPickupCodeConflict(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "could not allocate a pickup code")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}
	if replayed {
		return s.reloadExisting(ctx, draft.order.StripeSessionID)
	}
	return order, nil
}

// insertDraft writes the order, its line items and the stock decrements in a
// single transaction so a failed insert never burns inventory.
func (s *service) insertDraft(ctx context.Context, draft *orderDraft, code string) (*models.Order, error) {
	var created *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		ordersRepo := s.orders.WithTx(tx)
		invRepo := s.inventory.WithTx(tx)

		order := draft.order
		order.PickupCode = code
		if _, err := ordersRepo.Create(ctx, &order); err != nil {
			return err
		}

		items := make([]models.OrderLineItem, 0, len(draft.lines))
		for _, line := range draft.lines {
			category := enums.ProductCategoryService
			matched := false
			if line.priceID != "" {
				stock, err := invRepo.FindByPriceID(ctx, line.priceID)
				if err == nil {
					category = stock.Category
					matched = true
				} else if err != gorm.ErrRecordNotFound {
					return err
				}
			}
			items = append(items, models.OrderLineItem{
				OrderID:          order.ID,
				PriceID:          line.priceID,
				ProductName:      line.name,
				Quantity:         line.qty,
				UnitAmountCents:  line.unit,
				TotalAmountCents: line.total,
				Category:         category,
			})
			if matched {
				if err := invRepo.DecrementStock(ctx, line.priceID, line.qty); err != nil {
					return err
				}
			}
		}
		if err := ordersRepo.CreateLineItems(ctx, items); err != nil {
			return err
		}

		created = &order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) reloadExisting(ctx context.Context, sessionID string) (*models.Order, error) {
	existing, err := s.orders.FindByStripeSessionID(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order after session conflict")
	}
	return existing, nil
}

// CreateSession opens a Stripe checkout session for the storefront cart. The
// pickup code travels in the session metadata so the webhook can reuse it.
func (s *service) CreateSession(ctx context.Context, input CreateSessionInput) (*SessionView, error) {
	if s.stripe == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "stripe client not configured")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	for _, line := range input.Items {
		item, err := s.inventory.FindByPriceID(ctx, line.PriceID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, pkgerrors.New(pkgerrors.CodeValidation,
					fmt.Sprintf("unknown item %s", line.PriceID))
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory item")
		}
		if !item.Active {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("%s is no longer available", item.Name))
		}
		if item.Category != enums.ProductCategoryService && item.Stock < int(line.Quantity) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("insufficient stock for %s", item.Name))
		}
	}

	pickupCode := s.newCode()

	params := &stripe.CheckoutSessionCreateParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(s.cfg.SuccessURL),
		CancelURL:  stripe.String(s.cfg.CancelURL),
		PhoneNumberCollection: &stripe.CheckoutSessionCreatePhoneNumberCollectionParams{
			Enabled: stripe.Bool(true),
		},
	}
	for _, line := range input.Items {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionCreateLineItemParams{
			Price:    stripe.String(line.PriceID),
			Quantity: stripe.Int64(line.Quantity),
		})
	}
	if input.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(input.CustomerEmail)
	}
	params.AddMetadata(metadataPickupCode, pickupCode)
	params.AddMetadata(metadataOrderType, string(enums.OrderTypeOrDefault(input.OrderType)))

	sess, err := s.stripe.CreateSession(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create stripe checkout session")
	}

	return &SessionView{
		SessionID:  sess.ID,
		URL:        sess.URL,
		PickupCode: pickupCode,
	}, nil
}

// CreateTestOrder seeds a paid order without going through Stripe. Routed
// only outside production.
func (s *service) CreateTestOrder(ctx context.Context) (*models.Order, error) {
	draft := &orderDraft{
		order: models.Order{
			StripeSessionID: "cs_test_harness_" + uuid.NewString(),
			CustomerEmail:   "harness@stringshop.test",
			ItemDescription: "Test Stringing Order",
			OrderType:       enums.OrderTypeService,
			Currency:        "usd",
			Status:          enums.OrderStatusPaid,
		},
	}
	return s.allocateOrder(ctx, draft, "")
}

func isSessionConflict(err error) bool {
	return pkgdb.IsUniqueViolation(err, "orders_stripe_session_id_key") ||
		pkgdb.IsUniqueViolation(err, "orders.stripe_session_id")
}

func isPickupCodeConflict(err error) bool {
	return pkgdb.IsUniqueViolation(err, "orders_pickup_code_key") ||
		pkgdb.IsUniqueViolation(err, "orders.pickup_code")
}
