package stripewebhook

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v76"
)

func parseSubscription(event stripe.Event) (*stripe.Subscription, error) {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return nil, fmt.Errorf("parse subscription: %w", err)
	}
	return &sub, nil
}

func (h *Handler) handleSubscriptionCreated(ctx context.Context, event stripe.Event) error {
	sub, err := parseSubscription(event)
	if err != nil {
		return err
	}
	email, err := h.customerEmail(ctx, sub.Customer)
	if err != nil {
		return err
	}

	h.log.Info("new subscription", "subscription", sub.ID, "email", email, "status", sub.Status)

	h.mail.Dispatch(ctx, h.adminEmail,
		"🎉 New Subscription - Wyckoff Pro",
		newSubscriptionAdminEmail(email, string(sub.Status), sub.CurrentPeriodStart, sub.CurrentPeriodEnd))

	h.mail.Dispatch(ctx, email,
		"🚀 Welcome to Wyckoff Pro!",
		subscriptionWelcomeEmail(h.appURL))

	return nil
}

// handleSubscriptionUpdated emails both parties when a cancellation gets
// scheduled. Update events re-assert cancel_at_period_end on every change,
// so without the notice ledger the same cancellation is re-announced on
// each delivery.
func (h *Handler) handleSubscriptionUpdated(ctx context.Context, event stripe.Event) error {
	sub, err := parseSubscription(event)
	if err != nil {
		return err
	}

	h.log.Info("subscription updated", "subscription", sub.ID, "status", sub.Status)

	if !sub.CancelAtPeriodEnd {
		return nil
	}
	if h.notices != nil && h.notices.AlreadyNotified(sub.ID) {
		return nil
	}

	email, err := h.customerEmail(ctx, sub.Customer)
	if err != nil {
		return err
	}

	h.mail.Dispatch(ctx, h.adminEmail,
		"⚠️ Subscription Pending Cancellation - Wyckoff Pro",
		cancellationScheduledAdminEmail(email, sub.CurrentPeriodEnd))

	h.mail.Dispatch(ctx, email,
		"😢 Your subscription will be cancelled - Wyckoff Pro",
		cancellationScheduledEmail(h.appURL, sub.CurrentPeriodEnd))

	if h.notices != nil {
		if err := h.notices.MarkNotified(sub.ID); err != nil {
			h.log.Warn("failed to record cancellation notice", "subscription", sub.ID, "error", err)
		}
	}
	return nil
}

func (h *Handler) handleSubscriptionDeleted(ctx context.Context, event stripe.Event) error {
	sub, err := parseSubscription(event)
	if err != nil {
		return err
	}
	email, err := h.customerEmail(ctx, sub.Customer)
	if err != nil {
		return err
	}

	h.log.Info("subscription canceled", "subscription", sub.ID, "email", email)

	h.mail.Dispatch(ctx, h.adminEmail,
		"🔴 ACTION REQUIRED: Disable Access - Wyckoff Pro",
		accessRevocationAdminEmail(email, sub.ID))

	h.mail.Dispatch(ctx, email,
		"Your access to Wyckoff Pro has ended",
		accessEndedEmail(h.appURL))

	return nil
}

func (h *Handler) handleTrialWillEnd(ctx context.Context, event stripe.Event) error {
	sub, err := parseSubscription(event)
	if err != nil {
		return err
	}
	email, err := h.customerEmail(ctx, sub.Customer)
	if err != nil {
		return err
	}

	h.log.Info("trial ending", "subscription", sub.ID, "trial_end", sub.TrialEnd)

	h.mail.Dispatch(ctx, email,
		"⏰ Your free trial ends soon - Wyckoff Pro",
		trialEndingEmail(h.appURL, sub.TrialEnd))

	h.mail.Dispatch(ctx, h.adminEmail,
		"⏰ Trial ending - Wyckoff Pro",
		trialEndingAdminEmail(email, sub.TrialEnd))

	return nil
}
