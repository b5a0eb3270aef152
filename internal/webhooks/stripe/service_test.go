package stripewebhook

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v84"

	"github.com/eight22lax/stringshop-backend/pkg/db/models"
	"github.com/eight22lax/stringshop-backend/pkg/enums"
	pkgerrors "github.com/eight22lax/stringshop-backend/pkg/errors"
)

type stubCheckoutService struct {
	completed []*stripe.CheckoutSession
	order     *models.Order
	err       error
}

func (s *stubCheckoutService) CompleteCheckout(ctx context.Context, session *stripe.CheckoutSession) (*models.Order, error) {
	s.completed = append(s.completed, session)
	if s.err != nil {
		return nil, s.err
	}
	if s.order != nil {
		return s.order, nil
	}
	return &models.Order{ID: uuid.New(), StripeSessionID: session.ID, Status: enums.OrderStatusPaid}, nil
}

type stubStripeClient struct {
	session *stripe.CheckoutSession
	err     error
	calls   int
}

func (s *stubStripeClient) RetrieveSession(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error) {
	s.calls++
	return s.session, s.err
}

func (s *stubStripeClient) CreateSession(ctx context.Context, params *stripe.CheckoutSessionCreateParams) (*stripe.CheckoutSession, error) {
	return nil, errors.New("not used")
}

func sessionEvent(t *testing.T, sessionID string) *stripe.Event {
	t.Helper()
	raw, err := json.Marshal(&stripe.CheckoutSession{ID: sessionID})
	if err != nil {
		t.Fatalf("marshal session: %v", err)
	}
	return &stripe.Event{
		ID:   "evt_1",
		Type: stripe.EventTypeCheckoutSessionCompleted,
		Data: &stripe.EventData{Raw: raw},
	}
}

func TestService_HandleCheckoutSessionCompleted(t *testing.T) {
	expanded := &stripe.CheckoutSession{
		ID: "cs_test_1",
		LineItems: &stripe.LineItemList{Data: []*stripe.LineItem{
			{Description: "Semi-Soft Mesh", Quantity: 1},
		}},
	}
	checkoutSvc := &stubCheckoutService{}
	stripeClient := &stubStripeClient{session: expanded}
	service, err := NewService(ServiceParams{CheckoutService: checkoutSvc, StripeClient: stripeClient})
	if err != nil {
		t.Fatalf("setup service: %v", err)
	}

	if err := service.HandleEvent(context.Background(), sessionEvent(t, "cs_test_1")); err != nil {
		t.Fatalf("handle event: %v", err)
	}
	if stripeClient.calls != 1 {
		t.Fatalf("expected session re-fetched with line items, got %d calls", stripeClient.calls)
	}
	if len(checkoutSvc.completed) != 1 || checkoutSvc.completed[0] != expanded {
		t.Fatal("expected the expanded session passed to checkout")
	}
}

func TestService_HandleEventIgnoresOtherTypes(t *testing.T) {
	checkoutSvc := &stubCheckoutService{}
	service, err := NewService(ServiceParams{CheckoutService: checkoutSvc})
	if err != nil {
		t.Fatalf("setup service: %v", err)
	}

	event := &stripe.Event{
		Type: stripe.EventTypeInvoicePaid,
		Data: &stripe.EventData{Raw: []byte(`{}`)},
	}
	if err := service.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("unrelated events must be acknowledged, got %v", err)
	}
	if len(checkoutSvc.completed) != 0 {
		t.Fatal("unrelated events must not reach checkout")
	}
}

func TestService_HandleEventWithoutStripeClientUsesPayload(t *testing.T) {
	checkoutSvc := &stubCheckoutService{}
	service, err := NewService(ServiceParams{CheckoutService: checkoutSvc})
	if err != nil {
		t.Fatalf("setup service: %v", err)
	}

	if err := service.HandleEvent(context.Background(), sessionEvent(t, "cs_test_2")); err != nil {
		t.Fatalf("handle event: %v", err)
	}
	if len(checkoutSvc.completed) != 1 || checkoutSvc.completed[0].ID != "cs_test_2" {
		t.Fatal("expected the payload session passed through")
	}
}

func TestService_HandleEventPropagatesCheckoutError(t *testing.T) {
	checkoutSvc := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeDependency, "db down")}
	service, err := NewService(ServiceParams{CheckoutService: checkoutSvc})
	if err != nil {
		t.Fatalf("setup service: %v", err)
	}

	err = service.HandleEvent(context.Background(), sessionEvent(t, "cs_test_3"))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error surfaced, got %v", err)
	}
}

func TestService_HandleEventRejectsMissingData(t *testing.T) {
	service, err := NewService(ServiceParams{CheckoutService: &stubCheckoutService{}})
	if err != nil {
		t.Fatalf("setup service: %v", err)
	}

	err = service.HandleEvent(context.Background(), &stripe.Event{Type: stripe.EventTypeCheckoutSessionCompleted})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

type stubIdempotencyStore struct {
	keys   map[string]string
	setErr error
}

func (s *stubIdempotencyStore) Get(ctx context.Context, key string) (string, error) {
	return s.keys[key], nil
}

func (s *stubIdempotencyStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if s.setErr != nil {
		return false, s.setErr
	}
	if s.keys == nil {
		s.keys = make(map[string]string)
	}
	if _, ok := s.keys[key]; ok {
		return false, nil
	}
	s.keys[key] = value.(string)
	return true, nil
}

func (s *stubIdempotencyStore) IdempotencyKey(scope, id string) string {
	return "ss:idempotency:" + scope + ":" + id
}

func (s *stubIdempotencyStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.keys, key)
	}
	return nil
}

func TestIdempotencyGuard_CheckAndMark(t *testing.T) {
	store := &stubIdempotencyStore{}
	guard, err := NewIdempotencyGuard(store, time.Hour, "stripe")
	if err != nil {
		t.Fatalf("setup guard: %v", err)
	}

	seen, err := guard.CheckAndMark(context.Background(), "evt_1")
	if err != nil {
		t.Fatalf("first mark: %v", err)
	}
	if seen {
		t.Fatal("first delivery must not be marked as seen")
	}

	seen, err = guard.CheckAndMark(context.Background(), "evt_1")
	if err != nil {
		t.Fatalf("second mark: %v", err)
	}
	if !seen {
		t.Fatal("redelivery must be marked as seen")
	}

	if err := guard.Delete(context.Background(), "evt_1"); err != nil {
		t.Fatalf("delete mark: %v", err)
	}
	seen, err = guard.CheckAndMark(context.Background(), "evt_1")
	if err != nil || seen {
		t.Fatalf("expected event retryable after delete, seen=%v err=%v", seen, err)
	}
}

func TestIdempotencyGuard_Validation(t *testing.T) {
	if _, err := NewIdempotencyGuard(nil, time.Hour, "stripe"); err == nil {
		t.Fatal("expected error for nil store")
	}
	if _, err := NewIdempotencyGuard(&stubIdempotencyStore{}, time.Hour, ""); err == nil {
		t.Fatal("expected error for empty scope")
	}
	guard, err := NewIdempotencyGuard(&stubIdempotencyStore{}, time.Hour, "stripe")
	if err != nil {
		t.Fatalf("setup guard: %v", err)
	}
	if _, err := guard.CheckAndMark(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty event id")
	}
}
