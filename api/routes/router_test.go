package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/eight22lax/stringshop-backend/internal/inventory"
	internalorders "github.com/eight22lax/stringshop-backend/internal/orders"
	pkgauth "github.com/eight22lax/stringshop-backend/pkg/auth"
	"github.com/eight22lax/stringshop-backend/pkg/config"
	"github.com/eight22lax/stringshop-backend/pkg/enums"
	"github.com/eight22lax/stringshop-backend/pkg/logger"
	"github.com/eight22lax/stringshop-backend/pkg/metrics"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubOrdersService struct{}

func (stubOrdersService) SetStatus(ctx context.Context, orderID uuid.UUID, target enums.OrderStatus) (*internalorders.AdminOrder, error) {
	return &internalorders.AdminOrder{ID: orderID, Status: target}, nil
}

func (stubOrdersService) StepForward(ctx context.Context, orderID uuid.UUID) (*internalorders.AdminOrder, error) {
	return &internalorders.AdminOrder{ID: orderID}, nil
}

func (stubOrdersService) StepBack(ctx context.Context, orderID uuid.UUID) (*internalorders.AdminOrder, error) {
	return &internalorders.AdminOrder{ID: orderID}, nil
}

func (stubOrdersService) ConfirmDropOff(ctx context.Context, pickupCode, confirmCode string) (*internalorders.PublicOrder, error) {
	return &internalorders.PublicOrder{PickupCode: pickupCode, Status: enums.OrderStatusDroppedOff}, nil
}

func (stubOrdersService) ConfirmCustomerPickup(ctx context.Context, pickupCode, confirmCode string) (*internalorders.PublicOrder, error) {
	return &internalorders.PublicOrder{PickupCode: pickupCode, Status: enums.OrderStatusPickedUpByCustomer}, nil
}

func (stubOrdersService) ConfirmReview(ctx context.Context, pickupCode string) error {
	return nil
}

func (stubOrdersService) PublicStatus(ctx context.Context, pickupCode string) (*internalorders.PublicOrder, error) {
	return &internalorders.PublicOrder{PickupCode: pickupCode, Status: enums.OrderStatusPaid}, nil
}

func (stubOrdersService) AdminDetail(ctx context.Context, orderID uuid.UUID) (*internalorders.AdminOrder, error) {
	return &internalorders.AdminOrder{ID: orderID}, nil
}

func (stubOrdersService) AdminList(ctx context.Context, filters internalorders.ListFilters) (*internalorders.OrderList, error) {
	return &internalorders.OrderList{}, nil
}

func (stubOrdersService) Archive(ctx context.Context, orderID uuid.UUID) error {
	return nil
}

type stubInventoryService struct{}

func (stubInventoryService) Storefront(ctx context.Context) (*inventory.StorefrontView, error) {
	return &inventory.StorefrontView{}, nil
}

func (stubInventoryService) AdminList(ctx context.Context) ([]inventory.ItemView, error) {
	return nil, nil
}

func (stubInventoryService) GetByPriceID(ctx context.Context, priceID string) (*inventory.ItemView, error) {
	return &inventory.ItemView{PriceID: priceID}, nil
}

func (stubInventoryService) UpdateStock(ctx context.Context, priceID string, stock int) (*inventory.ItemView, error) {
	return &inventory.ItemView{PriceID: priceID, Stock: stock}, nil
}

func (stubInventoryService) SyncFromStripe(ctx context.Context) (*inventory.SyncResult, error) {
	return &inventory.SyncResult{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret: "secret",
			Issuer: "stringshop",
		},
		Admin:  config.AdminConfig{Email: "owner@stringshop.test"},
		Health: config.HealthConfig{ProbeTimeout: time.Second},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		nil, // redis client
		metrics.NewHTTPMetrics(),
		stubInventoryService{},
		stubOrdersService{},
		nil, // checkout service exercised via its own tests
		nil, // stripe client
		nil, // webhook service
		nil, // webhook guard
	)
}

func buildToken(t *testing.T, cfg *config.Config, email string, verified bool, role string) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), 30*time.Minute, pkgauth.AccessTokenPayload{
		Subject:       uuid.NewString(),
		Email:         email,
		EmailVerified: verified,
		Role:          role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(testConfig())

	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d (%s)", path, resp.Code, resp.Body.String())
		}
	}
}

func TestPublicOrderRoutesNeedNoAuth(t *testing.T) {
	router := newTestRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/4821", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for public order status got %d (%s)", resp.Code, resp.Body.String())
	}

	body := strings.NewReader(`{"confirm_code":"4821"}`)
	req = httptest.NewRequest(http.MethodPost, "/api/v1/orders/4821/drop-off", body)
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for drop-off confirm got %d (%s)", resp.Code, resp.Body.String())
	}
}

func TestAdminGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestAdminGroupRequiresAdminClaims(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	customer := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	customer.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, "casey@example.com", true, ""))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, customer)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin got %d", resp.Code)
	}

	unverified := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	unverified.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, "owner@stringshop.test", false, pkgauth.RoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, unverified)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for unverified email got %d", resp.Code)
	}

	roleAdmin := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	roleAdmin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, "staff@stringshop.test", true, pkgauth.RoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, roleAdmin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for role admin got %d (%s)", resp.Code, resp.Body.String())
	}

	allowListed := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	allowListed.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, "owner@stringshop.test", true, ""))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, allowListed)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for allow-listed owner got %d (%s)", resp.Code, resp.Body.String())
	}
}

func TestAdminOrderListRoute(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders/?status=paid&limit=10", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, "owner@stringshop.test", true, pkgauth.RoleAdmin))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin list got %d (%s)", resp.Code, resp.Body.String())
	}
}

func TestMetricsEndpointServed(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for metrics scrape got %d", resp.Code)
	}
}
