package stripewebhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v76"
)

func parseInvoice(event stripe.Event) (*stripe.Invoice, error) {
	var inv stripe.Invoice
	if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
		return nil, fmt.Errorf("parse invoice: %w", err)
	}
	return &inv, nil
}

func (h *Handler) handlePaymentFailed(ctx context.Context, event stripe.Event) error {
	inv, err := parseInvoice(event)
	if err != nil {
		return err
	}
	email, err := h.customerEmail(ctx, inv.Customer)
	if err != nil {
		return err
	}

	h.log.Info("payment failed", "invoice", inv.ID, "email", email, "attempts", inv.AttemptCount)

	h.mail.Dispatch(ctx, h.adminEmail,
		"💳 Payment Failed - Wyckoff Pro",
		paymentFailedAdminEmail(email, inv.AmountDue, inv.AttemptCount))

	h.mail.Dispatch(ctx, email,
		"⚠️ Issue with your payment - Wyckoff Pro",
		paymentFailedEmail(h.appURL))

	return nil
}

// handlePaymentSucceeded notifies on renewals only; the first payment of a
// subscription is already covered by the welcome flow.
func (h *Handler) handlePaymentSucceeded(ctx context.Context, event stripe.Event) error {
	inv, err := parseInvoice(event)
	if err != nil {
		return err
	}

	if inv.BillingReason != stripe.InvoiceBillingReasonSubscriptionCycle {
		return nil
	}

	email, err := h.customerEmail(ctx, inv.Customer)
	if err != nil {
		return err
	}

	h.log.Info("renewal succeeded", "invoice", inv.ID, "email", email)

	h.mail.Dispatch(ctx, h.adminEmail,
		"💰 Successful Renewal - Wyckoff Pro",
		renewalAdminEmail(email, inv.AmountPaid))

	h.mail.Dispatch(ctx, email,
		"✅ Successful renewal - Wyckoff Pro",
		renewalEmail(inv.AmountPaid))

	return nil
}

// handleInvoiceUpcoming is the provider's advance notice a few days before a
// renewal charge. Customer only.
func (h *Handler) handleInvoiceUpcoming(ctx context.Context, event stripe.Event) error {
	inv, err := parseInvoice(event)
	if err != nil {
		return err
	}
	email, err := h.customerEmail(ctx, inv.Customer)
	if err != nil {
		return err
	}

	dueDate := inv.DueDate
	if dueDate == 0 {
		dueDate = time.Now().Unix()
	}

	h.log.Info("upcoming charge", "invoice", inv.ID, "email", email)

	h.mail.Dispatch(ctx, email,
		"📅 Your renewal is coming up - Wyckoff Pro",
		upcomingRenewalEmail(h.appURL, inv.AmountDue, dueDate))

	return nil
}
