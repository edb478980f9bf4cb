package billing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"

	"wyckoffpro-backend/config"
	"wyckoffpro-backend/internal/app/http/middleware"
	"wyckoffpro-backend/internal/domain/plans"
	"wyckoffpro-backend/internal/domain/subscription"
	"wyckoffpro-backend/internal/infra/identity"

	infrabilling "wyckoffpro-backend/internal/infra/billing"
)

type fakeProvider struct {
	customers map[string]*stripe.Customer
	subs      map[string]*stripe.Subscription
	checkouts []infrabilling.CheckoutParams
	created   int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		customers: map[string]*stripe.Customer{},
		subs:      map[string]*stripe.Subscription{},
	}
}

func (f *fakeProvider) Configured() bool { return true }

func (f *fakeProvider) FindCustomerByEmail(_ context.Context, email string) (*stripe.Customer, error) {
	if cus, ok := f.customers[email]; ok {
		return cus, nil
	}
	return nil, infrabilling.ErrNotFound
}

func (f *fakeProvider) EnsureCustomer(_ context.Context, email, name string, metadata map[string]string) (*stripe.Customer, error) {
	if cus, ok := f.customers[email]; ok {
		return cus, nil
	}
	f.created++
	cus := &stripe.Customer{
		ID:       fmt.Sprintf("cus_%d", f.created),
		Email:    email,
		Name:     name,
		Metadata: metadata,
	}
	f.customers[email] = cus
	return cus, nil
}

func (f *fakeProvider) FirstSubscriptionByStatus(_ context.Context, customerID string, status stripe.SubscriptionStatus) (*stripe.Subscription, error) {
	if sub, ok := f.subs[customerID]; ok && sub.Status == status {
		return sub, nil
	}
	return nil, infrabilling.ErrNotFound
}

func (f *fakeProvider) CreateCheckoutSession(_ context.Context, p infrabilling.CheckoutParams) (*stripe.CheckoutSession, error) {
	f.checkouts = append(f.checkouts, p)
	return &stripe.CheckoutSession{ClientSecret: "cs_client_secret"}, nil
}

func (f *fakeProvider) CreatePortalSession(_ context.Context, customerID string) (*stripe.BillingPortalSession, error) {
	return &stripe.BillingPortalSession{URL: "https://billing.stripe.com/session/" + customerID}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		AppURL:               "https://wyckoffpro.app",
		StripePublishableKey: "pk_test_123",
		StripePrice6Months:   "price_6m",
		StripePriceLifetime:  "price_life",
	}
}

// newTestRouter mounts the handler behind a stub that injects the resolved
// user the way the identity middleware would.
func newTestRouter(provider *fakeProvider, user *identity.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	RegisterValidators()

	h := NewHandler(testConfig(), provider, subscription.NewResolver(provider), slog.New(slog.NewTextHandler(io.Discard, nil)))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if user != nil {
			middleware.SetCurrentUser(c, user)
		}
	})
	r.POST("/api/stripe/create-checkout-session", h.CreateCheckoutSession)
	r.POST("/api/stripe/portal", h.CreatePortal)
	r.GET("/api/stripe/subscription", h.Subscription)
	r.GET("/api/plans", h.Plans)
	r.GET("/api/stripe/config", h.CheckoutConfig)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func testUser() *identity.User {
	return &identity.User{ID: "user_1", Email: "trader@example.com", FirstName: "Ava", LastName: "Stone"}
}

func TestCreateCheckoutSessionRequiresUser(t *testing.T) {
	r := newTestRouter(newFakeProvider(), nil)

	w := do(r, http.MethodPost, "/api/stripe/create-checkout-session", `{}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateCheckoutSessionRejectsUnknownPlan(t *testing.T) {
	provider := newFakeProvider()
	r := newTestRouter(provider, testUser())

	w := do(r, http.MethodPost, "/api/stripe/create-checkout-session", `{"planId":"weekly"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid plan")
	assert.Empty(t, provider.checkouts)
}

func TestCreateCheckoutSessionDefaults(t *testing.T) {
	provider := newFakeProvider()
	r := newTestRouter(provider, testUser())

	w := do(r, http.MethodPost, "/api/stripe/create-checkout-session", `{}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"clientSecret":"cs_client_secret"}`, w.Body.String())

	require.Len(t, provider.checkouts, 1)
	p := provider.checkouts[0]
	assert.Equal(t, "6-months", p.Plan.ID)
	assert.Equal(t, "price_6m", p.PriceID)
	assert.Equal(t, "user_1", p.UserID)
	assert.True(t, p.Trial, "trial is opted-in unless explicitly declined")

	cus := provider.customers["trader@example.com"]
	require.NotNil(t, cus)
	assert.Equal(t, "Ava Stone", cus.Name)
	assert.Equal(t, "user_1", cus.Metadata["userId"])
}

func TestCreateCheckoutSessionTrialOptOut(t *testing.T) {
	provider := newFakeProvider()
	r := newTestRouter(provider, testUser())

	w := do(r, http.MethodPost, "/api/stripe/create-checkout-session", `{"planId":"3-months","trial":false}`)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, provider.checkouts, 1)
	assert.False(t, provider.checkouts[0].Trial)
}

func TestCreateCheckoutSessionReusesCustomer(t *testing.T) {
	provider := newFakeProvider()
	r := newTestRouter(provider, testUser())

	do(r, http.MethodPost, "/api/stripe/create-checkout-session", `{"planId":"6-months"}`)
	do(r, http.MethodPost, "/api/stripe/create-checkout-session", `{"planId":"lifetime"}`)

	assert.Equal(t, 1, provider.created, "repeat checkouts reuse the existing customer")
	require.Len(t, provider.checkouts, 2)
	assert.Equal(t, provider.checkouts[0].CustomerID, provider.checkouts[1].CustomerID)
}

func TestCheckoutPriceComesFromCatalog(t *testing.T) {
	provider := newFakeProvider()
	r := newTestRouter(provider, testUser())

	for _, id := range plans.IDs() {
		do(r, http.MethodPost, "/api/stripe/create-checkout-session", fmt.Sprintf(`{"planId":%q}`, id))
	}

	require.Len(t, provider.checkouts, len(plans.IDs()))
	for _, p := range provider.checkouts {
		plan, ok := plans.ByID(p.Plan.ID)
		require.True(t, ok)
		assert.Equal(t, plan.UnitAmount, p.Plan.UnitAmount,
			"checkout must charge the catalog price for %s", p.Plan.ID)
	}
}

func TestCreatePortalUnknownCustomer(t *testing.T) {
	r := newTestRouter(newFakeProvider(), testUser())

	w := do(r, http.MethodPost, "/api/stripe/portal", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Customer not found")
}

func TestCreatePortalReturnsSessionURL(t *testing.T) {
	provider := newFakeProvider()
	provider.customers["trader@example.com"] = &stripe.Customer{ID: "cus_42", Email: "trader@example.com"}
	r := newTestRouter(provider, testUser())

	w := do(r, http.MethodPost, "/api/stripe/portal", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"url":"https://billing.stripe.com/session/cus_42"}`, w.Body.String())
}

func TestSubscriptionWithoutIdentityFailsOpen(t *testing.T) {
	r := newTestRouter(newFakeProvider(), nil)

	w := do(r, http.MethodGet, "/api/stripe/subscription", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"hasSubscription":false`)
	assert.Contains(t, w.Body.String(), `"isNewUser":true`)
}

func TestSubscriptionReportsActive(t *testing.T) {
	provider := newFakeProvider()
	provider.customers["trader@example.com"] = &stripe.Customer{ID: "cus_42"}
	provider.subs["cus_42"] = &stripe.Subscription{
		ID:               "sub_9",
		Status:           stripe.SubscriptionStatusActive,
		CurrentPeriodEnd: 1790000000,
	}
	r := newTestRouter(provider, testUser())

	w := do(r, http.MethodGet, "/api/stripe/subscription", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"hasSubscription":true`)
	assert.Contains(t, w.Body.String(), `"sub_9"`)
}

func TestPlansAndConfigArePublic(t *testing.T) {
	r := newTestRouter(newFakeProvider(), nil)

	w := do(r, http.MethodGet, "/api/plans", "")
	assert.Equal(t, http.StatusOK, w.Code)
	for _, id := range plans.IDs() {
		assert.Contains(t, w.Body.String(), id)
	}

	w = do(r, http.MethodGet, "/api/stripe/config", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"publishableKey":"pk_test_123"}`, w.Body.String())
}
