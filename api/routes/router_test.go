package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hamzarauf/foodio-backend/internal/auth"
	cartsvc "github.com/hamzarauf/foodio-backend/internal/cart"
	"github.com/hamzarauf/foodio-backend/internal/catalog"
	checkoutsvc "github.com/hamzarauf/foodio-backend/internal/checkout"
	"github.com/hamzarauf/foodio-backend/internal/favorites"
	ordersvc "github.com/hamzarauf/foodio-backend/internal/orders"
	reordersvc "github.com/hamzarauf/foodio-backend/internal/reorder"
	pkgAuth "github.com/hamzarauf/foodio-backend/pkg/auth"
	"github.com/hamzarauf/foodio-backend/pkg/auth/session"
	"github.com/hamzarauf/foodio-backend/pkg/config"
	"github.com/hamzarauf/foodio-backend/pkg/logger"
	"github.com/hamzarauf/foodio-backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionChecker struct {
	active bool
}

func (s stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return s.active, nil
}

type stubAuthService struct{}

func (stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.LoginResponse, error) {
	panic("unimplemented")
}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	panic("unimplemented")
}

func (stubAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.TokenPairResponse, error) {
	panic("unimplemented")
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error {
	return nil
}

type stubCatalogService struct{}

func (stubCatalogService) ListMenu(ctx context.Context, category string) ([]catalog.ProductSummaryDTO, error) {
	return []catalog.ProductSummaryDTO{}, nil
}

func (stubCatalogService) GetProduct(ctx context.Context, productID uuid.UUID) (*catalog.ProductDetailDTO, error) {
	panic("unimplemented")
}

func (stubCatalogService) DeriveUnitPrice(ctx context.Context, productID uuid.UUID, optionIDs []uuid.UUID) (*catalog.PricedSelection, error) {
	panic("unimplemented")
}

type stubFavouritesService struct{}

func (stubFavouritesService) ListFavourites(ctx context.Context, userID uuid.UUID) ([]favorites.FavouriteRow, error) {
	return []favorites.FavouriteRow{}, nil
}

func (stubFavouritesService) AddItem(ctx context.Context, userID, productID uuid.UUID) error {
	panic("unimplemented")
}

func (stubFavouritesService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	panic("unimplemented")
}

type stubCartService struct{}

func (stubCartService) GetCart(ctx context.Context, userID uuid.UUID) (*cartsvc.CartDTO, error) {
	panic("unimplemented")
}

func (stubCartService) AddItem(ctx context.Context, userID uuid.UUID, input cartsvc.AddItemInput) (*cartsvc.CartDTO, error) {
	panic("unimplemented")
}

func (stubCartService) SetItemQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*cartsvc.CartDTO, error) {
	panic("unimplemented")
}

func (stubCartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*cartsvc.CartDTO, error) {
	panic("unimplemented")
}

type stubCheckoutService struct{}

func (stubCheckoutService) Quote(ctx context.Context, userID uuid.UUID) (*checkoutsvc.QuoteDTO, error) {
	panic("unimplemented")
}

func (stubCheckoutService) PlaceOrder(ctx context.Context, userID uuid.UUID, input checkoutsvc.PlaceOrderInput) (*checkoutsvc.ReceiptDTO, error) {
	panic("unimplemented")
}

type stubOrdersService struct{}

func (stubOrdersService) ListOrders(ctx context.Context, userID uuid.UUID) ([]ordersvc.OrderDTO, error) {
	return []ordersvc.OrderDTO{}, nil
}

type stubReorderService struct{}

func (stubReorderService) Reorder(ctx context.Context, userID, orderID uuid.UUID) (*reordersvc.ReorderResultDTO, error) {
	panic("unimplemented")
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "issuer",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config, sessionActive bool) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(Deps{
		Config:            cfg,
		Logger:            logg,
		DB:                stubPinger{},
		Redis:             (*redis.Client)(nil),
		SessionChecker:    stubSessionChecker{active: sessionActive},
		AuthService:       stubAuthService{},
		CatalogService:    stubCatalogService{},
		FavouritesService: stubFavouritesService{},
		CartService:       stubCartService{},
		CheckoutService:   stubCheckoutService{},
		OrdersService:     stubOrdersService{},
		ReorderService:    stubReorderService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestProtectedGroupRejectsMissingToken(t *testing.T) {
	router := newTestRouter(testConfig(), true)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/menu", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestProtectedGroupSucceedsWithToken(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, true)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/menu", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for menu with token got %d", resp.Code)
	}
}

func TestRevokedSessionIsRejected(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, false)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked session got %d", resp.Code)
	}
}

func TestLogoutRequiresToken(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, true)

	anon := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, anon)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous logout got %d", resp.Code)
	}

	authed := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	authed.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, authed)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for authed logout got %d", resp.Code)
	}
}

func TestHealthLiveReportsEnvironment(t *testing.T) {
	router := newTestRouter(testConfig(), true)
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for live probe got %d", resp.Code)
	}
	if got := resp.Header().Get("X-Foodio-Env"); got != "test" {
		t.Fatalf("expected env header test got %q", got)
	}
}

func TestMetricsRouteOnlyMountedWhenConfigured(t *testing.T) {
	router := newTestRouter(testConfig(), true)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without metrics handler got %d", resp.Code)
	}
}
