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

	adminlogsvc "github.com/junavolabs/junavo-backend/internal/adminlog"
	"github.com/junavolabs/junavo-backend/internal/catalog"
	checkoutsvc "github.com/junavolabs/junavo-backend/internal/checkout"
	pkgAuth "github.com/junavolabs/junavo-backend/pkg/auth"
	"github.com/junavolabs/junavo-backend/pkg/auth/session"
	"github.com/junavolabs/junavo-backend/pkg/config"
	"github.com/junavolabs/junavo-backend/pkg/db/models"
	"github.com/junavolabs/junavo-backend/pkg/enums"
	"github.com/junavolabs/junavo-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAdminLogService struct{}

func (stubAdminLogService) Record(ctx context.Context, entry adminlogsvc.Entry) {}

func (stubAdminLogService) List(ctx context.Context, limit int) ([]models.AdminLog, error) {
	return []models.AdminLog{}, nil
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

type captureCheckoutService struct {
	got checkoutsvc.SubmitInput
}

func (c *captureCheckoutService) Submit(ctx context.Context, input checkoutsvc.SubmitInput) (*models.Order, error) {
	c.got = input
	return &models.Order{ID: uuid.New()}, nil
}

func testDeps(cfg *config.Config) Deps {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return Deps{
		Config:     cfg,
		Logger:     logg,
		DB:         stubPinger{},
		Redis:      stubPinger{},
		Sessions:   stubSessionChecker{},
		Products:   catalog.NewProductCache(),
		Categories: catalog.NewCategoryCache(),
		AdminLogs:  stubAdminLogService{},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	return NewRouter(testDeps(cfg))
}

func buildToken(t *testing.T, cfg *config.Config, role enums.AppRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
}

func TestStorefrontIssuesSessionHeader(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for product list got %d", resp.Code)
	}
	issued := resp.Header().Get("X-Session-Id")
	if issued == "" {
		t.Fatal("expected a session id header on storefront responses")
	}
	if _, err := uuid.Parse(issued); err != nil {
		t.Fatalf("expected a uuid session id got %q", issued)
	}
}

func TestStorefrontEchoesExistingSession(t *testing.T) {
	router := newTestRouter(testConfig())
	sessionID := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set("X-Session-Id", sessionID)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if got := resp.Header().Get("X-Session-Id"); got != sessionID {
		t.Fatalf("expected session id %q echoed back got %q", sessionID, got)
	}
}

func TestCustomerGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me/profile", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestAdminGroupRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	nonAdmin := httptest.NewRequest(http.MethodGet, "/api/admin/v1/logs", nil)
	nonAdmin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.AppRoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, nonAdmin)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/admin/v1/logs", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.AppRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}

	super := httptest.NewRequest(http.MethodGet, "/api/admin/v1/logs", nil)
	super.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.AppRoleSuperAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, super)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for super admin got %d", resp.Code)
	}
}

const checkoutBody = `{
	"name": "Ada Lovelace",
	"email": "ada@example.com",
	"address": "1 Main St",
	"city": "Turin",
	"zip": "10100",
	"payment_method": "cash_on_delivery"
}`

func TestCheckoutAttachesAuthenticatedUser(t *testing.T) {
	cfg := testConfig()
	capture := &captureCheckoutService{}
	deps := testDeps(cfg)
	deps.Checkout = capture
	router := NewRouter(deps)

	userID := uuid.New()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: userID,
		Role:   enums.AppRoleUser,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(checkoutBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if capture.got.UserID == nil {
		t.Fatal("expected the authenticated user on the submitted order")
	}
	if *capture.got.UserID != userID {
		t.Fatalf("expected user %s on the order got %s", userID, *capture.got.UserID)
	}
}

func TestCheckoutAllowsGuestsAndBadTokens(t *testing.T) {
	cfg := testConfig()
	capture := &captureCheckoutService{}
	deps := testDeps(cfg)
	deps.Checkout = capture
	router := NewRouter(deps)

	guest := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(checkoutBody))
	guest.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, guest)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for guest checkout got %d: %s", resp.Code, resp.Body.String())
	}
	if capture.got.UserID != nil {
		t.Fatalf("expected nil user id for guest order got %s", *capture.got.UserID)
	}

	garbled := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(checkoutBody))
	garbled.Header.Set("Content-Type", "application/json")
	garbled.Header.Set("Authorization", "Bearer not-a-token")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, garbled)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected a bad token to fall back to guest checkout got %d", resp.Code)
	}
	if capture.got.UserID != nil {
		t.Fatalf("expected nil user id with an invalid token got %s", *capture.got.UserID)
	}
}

func TestMetricsEndpointExposed(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for metrics got %d", resp.Code)
	}
}
