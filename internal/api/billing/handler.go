package billing

import (
	"context"
	"log/slog"

	"github.com/stripe/stripe-go/v76"

	"wyckoffpro-backend/config"
	"wyckoffpro-backend/internal/domain/subscription"
	infrabilling "wyckoffpro-backend/internal/infra/billing"
)

// Provider is the slice of the billing adapter these handlers need.
type Provider interface {
	Configured() bool
	FindCustomerByEmail(ctx context.Context, email string) (*stripe.Customer, error)
	EnsureCustomer(ctx context.Context, email, name string, metadata map[string]string) (*stripe.Customer, error)
	CreateCheckoutSession(ctx context.Context, p infrabilling.CheckoutParams) (*stripe.CheckoutSession, error)
	CreatePortalSession(ctx context.Context, customerID string) (*stripe.BillingPortalSession, error)
}

// Handler serves the checkout, portal, subscription and pricing routes.
// All collaborators are injected once at startup.
type Handler struct {
	cfg      *config.Config
	billing  Provider
	resolver *subscription.Resolver
	log      *slog.Logger
}

func NewHandler(cfg *config.Config, billing Provider, resolver *subscription.Resolver, log *slog.Logger) *Handler {
	return &Handler{cfg: cfg, billing: billing, resolver: resolver, log: log}
}
