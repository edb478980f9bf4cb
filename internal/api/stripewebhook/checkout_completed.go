package stripewebhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"

	"wyckoffpro-backend/internal/infra/billing"
)

var errEventMissingCustomer = errors.New("event carries no customer reference")

// handleCheckoutCompleted processes one-time payments (the lifetime plan).
// Subscription checkouts surface separately via customer.subscription.created.
func (h *Handler) handleCheckoutCompleted(ctx context.Context, event stripe.Event) error {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return fmt.Errorf("parse checkout session: %w", err)
	}

	if session.Mode != stripe.CheckoutSessionModePayment {
		return nil
	}

	email := session.CustomerEmail
	if email == "" {
		if session.Customer != nil {
			resolved, err := h.billing.CustomerEmail(ctx, session.Customer.ID)
			if err != nil {
				return err
			}
			email = resolved
		} else {
			email = billing.UnknownCustomerEmail
		}
	}

	planID := session.Metadata["planId"]
	if planID == "" {
		planID = "lifetime"
	}

	h.log.Info("one-time payment completed", "session", session.ID, "email", email, "plan", planID)

	h.mail.Dispatch(ctx, h.adminEmail,
		"🎉 New Lifetime Purchase - Wyckoff Pro",
		lifetimePurchaseAdminEmail(email, planID, session.AmountTotal))

	h.mail.Dispatch(ctx, email,
		"🚀 Welcome to Wyckoff Pro Lifetime!",
		lifetimeWelcomeEmail(h.appURL))

	return nil
}
