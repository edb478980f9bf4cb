package subscription

import (
	"context"
	"errors"

	"github.com/stripe/stripe-go/v76"

	"wyckoffpro-backend/internal/infra/billing"
	"wyckoffpro-backend/internal/infra/identity"
)

// BillingProvider is the slice of the billing adapter the resolver needs.
type BillingProvider interface {
	Configured() bool
	FindCustomerByEmail(ctx context.Context, email string) (*stripe.Customer, error)
	FirstSubscriptionByStatus(ctx context.Context, customerID string, status stripe.SubscriptionStatus) (*stripe.Subscription, error)
}

// Resolution is the typed result of a state lookup. Degraded marks views
// produced by the fail-open path: "could not determine, assumed none" as
// opposed to "confirmed no subscription". The HTTP layer serves the view
// either way and only logs the cause.
type Resolution struct {
	View     SubscriptionView
	Degraded bool
	Cause    error
}

// Resolver turns an authenticated identity into a SubscriptionView.
type Resolver struct {
	billing BillingProvider
}

func NewResolver(b BillingProvider) *Resolver {
	return &Resolver{billing: b}
}

// Resolve runs the two-step lookup: customer by email, then subscriptions
// filtered to active with a trialing fallback (the provider takes one status
// per query). The order matters: the active query short-circuits, so an
// active subscription always wins over a stray trialing one.
//
// Any unexpected failure degrades to a no-subscription view instead of
// propagating; blocking the dashboard on a billing hiccup is judged worse
// than temporarily under-reporting status.
func (r *Resolver) Resolve(ctx context.Context, user *identity.User) Resolution {
	// Fail open toward "new user" so the UI does not dead-end when billing
	// is unreachable by construction rather than by failure.
	if !r.billing.Configured() || user == nil || user.Email == "" {
		return ok(SubscriptionView{HasSubscription: false, IsNewUser: true})
	}

	cus, err := r.billing.FindCustomerByEmail(ctx, user.Email)
	if errors.Is(err, billing.ErrNotFound) {
		// Never reached billing: must not be shown a renewal message.
		return ok(SubscriptionView{HasSubscription: false, IsNewUser: true})
	}
	if err != nil {
		return degraded(err)
	}

	sub, err := r.billing.FirstSubscriptionByStatus(ctx, cus.ID, stripe.SubscriptionStatusActive)
	if errors.Is(err, billing.ErrNotFound) {
		sub, err = r.billing.FirstSubscriptionByStatus(ctx, cus.ID, stripe.SubscriptionStatusTrialing)
	}
	if errors.Is(err, billing.ErrNotFound) {
		// Customer exists but nothing live: lapsed, not new.
		return ok(SubscriptionView{HasSubscription: false, IsNewUser: false})
	}
	if err != nil {
		return degraded(err)
	}

	return ok(SubscriptionView{
		HasSubscription: true,
		Subscription:    detailsFrom(sub),
	})
}

func ok(view SubscriptionView) Resolution {
	view.State = view.state()
	return Resolution{View: view}
}

func degraded(cause error) Resolution {
	view := SubscriptionView{HasSubscription: false, IsNewUser: false}
	view.State = view.state()
	return Resolution{View: view, Degraded: true, Cause: cause}
}
