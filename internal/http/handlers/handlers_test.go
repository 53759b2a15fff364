package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/homenest/homenest-api/internal/domain"
	"github.com/homenest/homenest-api/internal/platform/identity"
	"github.com/homenest/homenest-api/internal/platform/mailer"
	"github.com/homenest/homenest-api/internal/service"
	"github.com/homenest/homenest-api/pkg/auth"
	"github.com/homenest/homenest-api/pkg/config"
)

type testEnv struct {
	server     *httptest.Server
	users      *fakeUserRepo
	properties *fakePropertyRepo
	wishlists  *fakeWishlistRepo
	reviews    *fakeReviewRepo
	offers     *fakeOfferRepo
	payments   *fakePaymentProvider
	cfg        *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		users:      newFakeUserRepo(),
		properties: newFakePropertyRepo(),
		wishlists:  newFakeWishlistRepo(),
		reviews:    newFakeReviewRepo(),
		offers:     newFakeOfferRepo(),
		payments:   &fakePaymentProvider{},
		cfg: &config.Config{
			Auth: config.AuthConfig{
				JWTSecret: "test-secret",
				TokenTTL:  time.Hour,
			},
			Stripe: config.StripeConfig{Currency: "usd"},
		},
	}

	bus := noopPublisher{}
	userService := service.NewUserService(env.users, env.properties, identity.NewDevProvider(), bus)
	propertyService := service.NewPropertyService(env.properties, bus)
	wishlistService := service.NewWishlistService(env.wishlists)
	reviewService := service.NewReviewService(env.reviews)
	offerService := service.NewOfferService(env.offers, bus, mailer.NewDevMailer())
	paymentService := service.NewPaymentService(env.payments, env.cfg.Stripe.Currency)
	dashboardService := service.NewDashboardService(env.users, env.properties, env.reviews, env.offers)

	h := New(
		userService,
		propertyService,
		wishlistService,
		reviewService,
		offerService,
		paymentService,
		dashboardService,
		env.cfg,
	)

	env.server = httptest.NewServer(h.Routes())
	t.Cleanup(env.server.Close)
	return env
}

func (e *testEnv) seedUser(t *testing.T, email string, role domain.Role) *domain.User {
	t.Helper()
	user := &domain.User{
		ID:        uuid.NewString(),
		Name:      "Test " + string(role),
		Email:     email,
		Role:      role,
		CreatedAt: time.Now(),
	}
	if err := e.users.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user failed: %v", err)
	}
	return user
}

func (e *testEnv) token(t *testing.T, email string, role domain.Role) string {
	t.Helper()
	tok, err := auth.NewAccessToken(email, string(role), e.cfg.Auth.JWTSecret, e.cfg.Auth.TokenTTL)
	if err != nil {
		t.Fatalf("token issue failed: %v", err)
	}
	return tok
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	req := domain.UserCreateReq{Name: "Ana", Email: "ana@example.com"}

	resp := env.do(t, http.MethodPost, "/users", "", req)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 on first create, got %d", resp.StatusCode)
	}

	resp = env.do(t, http.MethodPost, "/users", "", req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 on duplicate email, got %d", resp.StatusCode)
	}
	var errResp struct {
		Code string `json:"code"`
	}
	decodeBody(t, resp, &errResp)
	if errResp.Code != "EMAIL_EXISTS" {
		t.Errorf("expected EMAIL_EXISTS code, got %q", errResp.Code)
	}
}

func TestMissingTokenIs401(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/offers?email=x@example.com", "", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", resp.StatusCode)
	}
}

func TestInvalidTokenIs403(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/offers?email=x@example.com", "garbage", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 with invalid token, got %d", resp.StatusCode)
	}
}

func TestExpiredTokenIs403(t *testing.T) {
	env := newTestEnv(t)

	tok, err := auth.NewAccessToken("x@example.com", "user", env.cfg.Auth.JWTSecret, -time.Minute)
	if err != nil {
		t.Fatalf("token issue failed: %v", err)
	}

	resp := env.do(t, http.MethodGet, "/offers?email=x@example.com", tok, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 with expired token, got %d", resp.StatusCode)
	}
}

// A token minted while the user was an agent must stop working for agent
// routes the moment the stored role changes.
func TestRoleGuardReadsStoredRole(t *testing.T) {
	env := newTestEnv(t)

	agent := env.seedUser(t, "agent@example.com", domain.RoleAgent)
	tok := env.token(t, agent.Email, domain.RoleAgent)

	resp := env.do(t, http.MethodGet, "/properties/agent?email=agent@example.com", tok, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for agent before demotion, got %d", resp.StatusCode)
	}

	if err := env.users.UpdateRole(context.Background(), agent.ID, domain.RoleUser); err != nil {
		t.Fatalf("demote failed: %v", err)
	}

	resp = env.do(t, http.MethodGet, "/properties/agent?email=agent@example.com", tok, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 after demotion with stale token, got %d", resp.StatusCode)
	}
}

func TestUserRoleCannotReachAdminRoutes(t *testing.T) {
	env := newTestEnv(t)

	user := env.seedUser(t, "plain@example.com", domain.RoleUser)
	tok := env.token(t, user.Email, domain.RoleAdmin) // forged role claim

	resp := env.do(t, http.MethodGet, "/users", tok, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for forged admin claim, got %d", resp.StatusCode)
	}
}

func TestPropertyVerificationFlow(t *testing.T) {
	env := newTestEnv(t)

	agent := env.seedUser(t, "agent@example.com", domain.RoleAgent)
	admin := env.seedUser(t, "admin@example.com", domain.RoleAdmin)
	agentTok := env.token(t, agent.Email, domain.RoleAgent)
	adminTok := env.token(t, admin.Email, domain.RoleAdmin)

	create := func(title string, minPrice float64) string {
		resp := env.do(t, http.MethodPost, "/properties", agentTok, domain.PropertyReq{
			Title:      title,
			Location:   "Springfield",
			AgentEmail: agent.Email,
			MinPrice:   minPrice,
			MaxPrice:   minPrice * 2,
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201 creating property, got %d", resp.StatusCode)
		}
		var p domain.Property
		decodeBody(t, resp, &p)
		if p.Status != domain.PropertyPending {
			t.Fatalf("expected new property pending, got %s", p.Status)
		}
		return p.ID
	}

	cheap := create("Cheap Cottage", 100000)
	dear := create("Grand Manor", 900000)
	create("Never Verified", 50000)

	for _, id := range []string{dear, cheap} {
		resp := env.do(t, http.MethodPatch, "/properties/status/"+id, adminTok, map[string]string{"status": "verified"})
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200 verifying property, got %d", resp.StatusCode)
		}
	}

	resp := env.do(t, http.MethodGet, "/properties/verified", "", nil)
	var listed []domain.Property
	decodeBody(t, resp, &listed)

	if len(listed) != 2 {
		t.Fatalf("expected 2 verified properties, got %d", len(listed))
	}
	if listed[0].ID != cheap || listed[1].ID != dear {
		t.Errorf("expected ascending min_price order [%s %s], got [%s %s]",
			cheap, dear, listed[0].ID, listed[1].ID)
	}
}

func TestOfferLifecycleFlow(t *testing.T) {
	env := newTestEnv(t)

	agent := env.seedUser(t, "agent@example.com", domain.RoleAgent)
	buyer := env.seedUser(t, "buyer@example.com", domain.RoleUser)
	rival := env.seedUser(t, "rival@example.com", domain.RoleUser)
	agentTok := env.token(t, agent.Email, domain.RoleAgent)
	buyerTok := env.token(t, buyer.Email, domain.RoleUser)

	makeOffer := func(tok, email string, amount float64) string {
		resp := env.do(t, http.MethodPost, "/offers", tok, domain.OfferReq{
			PropertyID: "prop-1",
			Title:      "Sunny Villa",
			AgentEmail: agent.Email,
			BuyerEmail: email,
			Amount:     amount,
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201 creating offer, got %d", resp.StatusCode)
		}
		var o domain.Offer
		decodeBody(t, resp, &o)
		return o.ID
	}

	o1 := makeOffer(buyerTok, buyer.Email, 300000)
	o2 := makeOffer(env.token(t, rival.Email, domain.RoleUser), rival.Email, 280000)

	// Accept o1; o2 must be swept to rejected.
	resp := env.do(t, http.MethodPatch, "/offers/accept/"+o1, agentTok, nil)
	var accepted domain.Offer
	decodeBody(t, resp, &accepted)
	if accepted.Status != domain.OfferAccepted {
		t.Fatalf("expected accepted status, got %s", accepted.Status)
	}

	sibling, err := env.offers.GetByID(context.Background(), o2)
	if err != nil || sibling == nil {
		t.Fatalf("sibling lookup failed: %v", err)
	}
	if sibling.Status != domain.OfferRejected {
		t.Errorf("expected sibling offer rejected, got %s", sibling.Status)
	}

	// A second accept of the same offer is a conflict now.
	resp = env.do(t, http.MethodPatch, "/offers/accept/"+o1, agentTok, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 re-accepting, got %d", resp.StatusCode)
	}

	// Buyer completes the purchase.
	resp = env.do(t, http.MethodPatch, "/offers/"+o1, buyerTok, map[string]string{"transaction_id": "tx123"})
	var bought domain.Offer
	decodeBody(t, resp, &bought)
	if bought.Status != domain.OfferBought {
		t.Fatalf("expected bought status, got %s", bought.Status)
	}
	if bought.TransactionID != "tx123" {
		t.Errorf("expected transaction id tx123, got %s", bought.TransactionID)
	}

	resp = env.do(t, http.MethodGet, "/bought-properties?email="+buyer.Email, buyerTok, nil)
	var boughtList []domain.Offer
	decodeBody(t, resp, &boughtList)
	if len(boughtList) != 1 || boughtList[0].ID != o1 {
		t.Errorf("expected bought list [%s], got %v", o1, boughtList)
	}
}

func TestMarkBoughtPendingOfferIs409(t *testing.T) {
	env := newTestEnv(t)

	buyer := env.seedUser(t, "buyer@example.com", domain.RoleUser)
	buyerTok := env.token(t, buyer.Email, domain.RoleUser)

	resp := env.do(t, http.MethodPost, "/offers", buyerTok, domain.OfferReq{
		PropertyID: "prop-1",
		AgentEmail: "agent@example.com",
		BuyerEmail: buyer.Email,
		Amount:     100000,
	})
	var offer domain.Offer
	decodeBody(t, resp, &offer)

	resp = env.do(t, http.MethodPatch, "/offers/"+offer.ID, buyerTok, map[string]string{"transaction_id": "tx1"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 buying a pending offer, got %d", resp.StatusCode)
	}
}

func TestDeleteMissingReviewIs404(t *testing.T) {
	env := newTestEnv(t)

	user := env.seedUser(t, "user@example.com", domain.RoleUser)
	tok := env.token(t, user.Email, domain.RoleUser)

	resp := env.do(t, http.MethodDelete, "/reviews/nope", tok, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 deleting missing review, got %d", resp.StatusCode)
	}
}

func TestWishlistRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	user := env.seedUser(t, "user@example.com", domain.RoleUser)
	tok := env.token(t, user.Email, domain.RoleUser)

	resp := env.do(t, http.MethodPost, "/wishlist", tok, domain.WishlistReq{
		UserEmail:  user.Email,
		PropertyID: "prop-1",
		Title:      "Sunny Villa",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 adding wishlist item, got %d", resp.StatusCode)
	}
	var item domain.WishlistItem
	decodeBody(t, resp, &item)

	resp = env.do(t, http.MethodGet, "/wishlist?email="+user.Email, tok, nil)
	var items []domain.WishlistItem
	decodeBody(t, resp, &items)
	if len(items) != 1 || items[0].ID != item.ID {
		t.Fatalf("expected wishlist [%s], got %v", item.ID, items)
	}

	resp = env.do(t, http.MethodDelete, "/wishlist/"+item.ID, tok, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 removing wishlist item, got %d", resp.StatusCode)
	}

	resp = env.do(t, http.MethodGet, "/wishlist?email="+user.Email, tok, nil)
	decodeBody(t, resp, &items)
	if len(items) != 0 {
		t.Errorf("expected empty wishlist, got %v", items)
	}
}

func TestCreatePaymentIntent(t *testing.T) {
	env := newTestEnv(t)

	user := env.seedUser(t, "buyer@example.com", domain.RoleUser)
	tok := env.token(t, user.Email, domain.RoleUser)

	resp := env.do(t, http.MethodPost, "/create-payment-intent", tok, map[string]float64{"price": 1234.56})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var out struct {
		ClientSecret string `json:"client_secret"`
	}
	decodeBody(t, resp, &out)
	if out.ClientSecret != "cs_test_secret" {
		t.Errorf("expected client secret from provider, got %q", out.ClientSecret)
	}
	if env.payments.lastAmount != 123456 {
		t.Errorf("expected 123456 cents, got %d", env.payments.lastAmount)
	}
	if env.payments.lastCurrency != "usd" {
		t.Errorf("expected usd currency, got %q", env.payments.lastCurrency)
	}

	resp = env.do(t, http.MethodPost, "/create-payment-intent", tok, map[string]float64{"price": 0})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for non-positive price, got %d", resp.StatusCode)
	}
}

func TestAdminDashboardSummary(t *testing.T) {
	env := newTestEnv(t)

	admin := env.seedUser(t, "admin@example.com", domain.RoleAdmin)
	env.seedUser(t, "agent@example.com", domain.RoleAgent)
	env.seedUser(t, "user@example.com", domain.RoleUser)
	adminTok := env.token(t, admin.Email, domain.RoleAdmin)

	env.properties.Create(context.Background(), &domain.Property{ID: "p1", Status: domain.PropertyVerified, Advertised: true})
	env.properties.Create(context.Background(), &domain.Property{ID: "p2", Status: domain.PropertyPending})
	env.offers.Create(context.Background(), &domain.Offer{ID: "o1", Status: domain.OfferPending})
	env.offers.Create(context.Background(), &domain.Offer{ID: "o2", Status: domain.OfferBought})
	env.reviews.Create(context.Background(), &domain.Review{ID: "r1", PropertyID: "p1"})

	resp := env.do(t, http.MethodGet, "/admin-dashboard-summary", adminTok, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var summary service.DashboardSummary
	decodeBody(t, resp, &summary)

	if summary.Users.Total != 3 || summary.Users.Agents != 1 || summary.Users.Admins != 1 {
		t.Errorf("unexpected user counts: %+v", summary.Users)
	}
	if summary.Properties.Total != 2 || summary.Properties.Verified != 1 || summary.Properties.Advertised != 1 {
		t.Errorf("unexpected property counts: %+v", summary.Properties)
	}
	if summary.Offers.Total != 2 || summary.Offers.Pending != 1 || summary.Offers.Bought != 1 {
		t.Errorf("unexpected offer counts: %+v", summary.Offers)
	}
	if summary.Reviews != 1 {
		t.Errorf("expected 1 review, got %d", summary.Reviews)
	}
}

func TestIssueTokenRequiresEmail(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/jwt", "", map[string]string{"role": "user"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 without email, got %d", resp.StatusCode)
	}

	resp = env.do(t, http.MethodPost, "/jwt", "", map[string]string{"email": "a@b.com", "role": "user"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var out struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &out)

	claims, err := auth.Parse(out.Token, env.cfg.Auth.JWTSecret)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.Email != "a@b.com" {
		t.Errorf("expected email claim a@b.com, got %s", claims.Email)
	}
}
