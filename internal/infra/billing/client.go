package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"wyckoffpro-backend/internal/domain/plans"
)

var (
	// ErrNotConfigured means no Stripe secret key was provided. Callers decide
	// whether that is fatal (checkout) or a degradation (subscription reads).
	ErrNotConfigured = errors.New("billing: stripe not configured")
	// ErrNotFound means the provider holds no matching record.
	ErrNotFound = errors.New("billing: not found")
)

// Sentinel addresses used when a webhook references a customer whose record
// no longer resolves to a usable email.
const (
	DeletedCustomerEmail = "deleted@customer.com"
	UnknownCustomerEmail = "unknown@email.com"
)

// Client wraps an explicitly constructed Stripe API client. One instance is
// built at process start and passed by reference to every handler.
type Client struct {
	api    *client.API
	appURL string
}

// New builds a billing client. An empty key yields a client whose every call
// returns ErrNotConfigured, which keeps the wiring uniform for deployments
// that run without billing.
func New(secretKey, appURL string) *Client {
	c := &Client{appURL: appURL}
	if secretKey != "" {
		c.api = client.New(secretKey, nil)
	}
	return c
}

// Configured reports whether a secret key was provided.
func (c *Client) Configured() bool {
	return c.api != nil
}

// FindCustomerByEmail looks up at most one customer by email.
func (c *Client) FindCustomerByEmail(ctx context.Context, email string) (*stripe.Customer, error) {
	if c.api == nil {
		return nil, ErrNotConfigured
	}

	params := &stripe.CustomerListParams{Email: stripe.String(email)}
	params.Context = ctx
	params.Limit = stripe.Int64(1)

	it := c.api.Customers.List(params)
	if it.Next() {
		return it.Customer(), nil
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return nil, ErrNotFound
}

// EnsureCustomer returns the existing customer for an email or creates one.
// The lookup-then-create order makes retries idempotent: a second call with
// the same email finds the customer the first call created.
func (c *Client) EnsureCustomer(ctx context.Context, email, name string, metadata map[string]string) (*stripe.Customer, error) {
	cus, err := c.FindCustomerByEmail(ctx, email)
	if err == nil {
		return cus, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	params := &stripe.CustomerParams{
		Email:    stripe.String(email),
		Metadata: metadata,
	}
	params.Context = ctx
	if name != "" {
		params.Name = stripe.String(name)
	}

	cus, err = c.api.Customers.New(params)
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return cus, nil
}

// FirstSubscriptionByStatus returns the first subscription with the given
// status for a customer. The provider API takes one status filter per call,
// so the resolver issues separate active and trialing queries.
func (c *Client) FirstSubscriptionByStatus(ctx context.Context, customerID string, status stripe.SubscriptionStatus) (*stripe.Subscription, error) {
	if c.api == nil {
		return nil, ErrNotConfigured
	}

	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(customerID),
		Status:   stripe.String(string(status)),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(1)

	it := c.api.Subscriptions.List(params)
	if it.Next() {
		return it.Subscription(), nil
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return nil, ErrNotFound
}

// CheckoutParams describes one checkout-session creation.
type CheckoutParams struct {
	Plan       plans.Plan
	PriceID    string // pre-provisioned price, empty builds inline price_data
	CustomerID string
	UserID     string
	Trial      bool
}

// CreateCheckoutSession creates an embedded-mode checkout session carrying
// the internal user id and plan id as metadata on the session and on the
// nested subscription/payment-intent, so webhook events can be traced back.
func (c *Client) CreateCheckoutSession(ctx context.Context, p CheckoutParams) (*stripe.CheckoutSession, error) {
	if c.api == nil {
		return nil, ErrNotConfigured
	}

	meta := map[string]string{
		"userId": p.UserID,
		"planId": p.Plan.ID,
	}

	var lineItem *stripe.CheckoutSessionLineItemParams
	if p.PriceID != "" {
		lineItem = &stripe.CheckoutSessionLineItemParams{
			Price:    stripe.String(p.PriceID),
			Quantity: stripe.Int64(1),
		}
	} else {
		priceData := &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency: stripe.String(p.Plan.Currency),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name:        stripe.String(p.Plan.Name),
				Description: stripe.String(p.Plan.Description),
			},
			UnitAmount: stripe.Int64(p.Plan.UnitAmount),
		}
		if p.Plan.Recurring() {
			priceData.Recurring = &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
				Interval:      stripe.String(p.Plan.Interval),
				IntervalCount: stripe.Int64(p.Plan.IntervalCount),
			}
		}
		lineItem = &stripe.CheckoutSessionLineItemParams{
			PriceData: priceData,
			Quantity:  stripe.Int64(1),
		}
	}

	params := &stripe.CheckoutSessionParams{
		Customer:            stripe.String(p.CustomerID),
		UIMode:              stripe.String(string(stripe.CheckoutSessionUIModeEmbedded)),
		Mode:                stripe.String(p.Plan.Mode),
		PaymentMethodTypes:  stripe.StringSlice([]string{"card"}),
		LineItems:           []*stripe.CheckoutSessionLineItemParams{lineItem},
		ReturnURL:           stripe.String(c.appURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}"),
		AllowPromotionCodes: stripe.Bool(true),
		Metadata:            meta,
	}
	params.Context = ctx

	if p.Plan.Recurring() {
		params.SubscriptionData = &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: meta,
		}
		if p.Trial && p.Plan.TrialEligible {
			params.SubscriptionData.TrialPeriodDays = stripe.Int64(7)
		}
	} else {
		params.PaymentIntentData = &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: meta,
		}
	}

	s, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return s, nil
}

// CreatePortalSession creates a billing-portal session returning to the
// dashboard.
func (c *Client) CreatePortalSession(ctx context.Context, customerID string) (*stripe.BillingPortalSession, error) {
	if c.api == nil {
		return nil, ErrNotConfigured
	}

	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(c.appURL + "/dashboard"),
	}
	params.Context = ctx

	s, err := c.api.BillingPortalSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create portal session: %w", err)
	}
	return s, nil
}

// CustomerEmail resolves the email behind a customer id for webhook
// notifications. A deleted customer maps to a sentinel rather than an error
// so a single stale record cannot fail an entire event.
func (c *Client) CustomerEmail(ctx context.Context, customerID string) (string, error) {
	if c.api == nil {
		return "", ErrNotConfigured
	}

	params := &stripe.CustomerParams{}
	params.Context = ctx

	cus, err := c.api.Customers.Get(customerID, params)
	if err != nil {
		return "", fmt.Errorf("get customer: %w", err)
	}
	if cus.Deleted {
		return DeletedCustomerEmail, nil
	}
	if cus.Email == "" {
		return UnknownCustomerEmail, nil
	}
	return cus.Email, nil
}
