package stripewebhook

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"

	"wyckoffpro-backend/internal/infra/mailer"
)

// EmailResolver maps a billing customer id to an email address.
type EmailResolver interface {
	CustomerEmail(ctx context.Context, customerID string) (string, error)
}

// NoticeLedger deduplicates cancellation-scheduled emails. Optional: a nil
// ledger means every update event carrying cancel_at_period_end re-sends
// the email, which is what the billing provider's at-least-once delivery
// already implies.
type NoticeLedger interface {
	AlreadyNotified(subscriptionID string) bool
	MarkNotified(subscriptionID string) error
}

// Handler verifies and processes billing-provider webhook events. No retries
// happen locally: a non-2xx answer makes the provider redeliver the event.
type Handler struct {
	secret     string
	billing    EmailResolver
	mail       *mailer.Dispatcher
	notices    NoticeLedger
	adminEmail string
	appURL     string
	log        *slog.Logger
}

func NewHandler(secret string, billing EmailResolver, mail *mailer.Dispatcher, notices NoticeLedger, adminEmail, appURL string, log *slog.Logger) *Handler {
	return &Handler{
		secret:     secret,
		billing:    billing,
		mail:       mail,
		notices:    notices,
		adminEmail: adminEmail,
		appURL:     appURL,
		log:        log,
	}
}

// Handle is the webhook endpoint. 400 strictly means signature (or payload)
// verification failed and the event was not processed; 500 means dispatch
// failed and the provider should retry.
func (h *Handler) Handle(c *gin.Context) {
	if h.secret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "STRIPE_WEBHOOK_SECRET not configured"})
		return
	}

	payload, err := readBody(c, 65536)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		h.secret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		h.log.Warn("webhook signature verification failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Webhook signature verification failed"})
		return
	}

	if err := h.process(c.Request.Context(), event); err != nil {
		h.log.Error("webhook processing failed", "type", event.Type, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook processing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func (h *Handler) process(ctx context.Context, event stripe.Event) error {
	switch event.Type {
	case "checkout.session.completed":
		return h.handleCheckoutCompleted(ctx, event)
	case "customer.subscription.created":
		return h.handleSubscriptionCreated(ctx, event)
	case "customer.subscription.updated":
		return h.handleSubscriptionUpdated(ctx, event)
	case "customer.subscription.deleted":
		return h.handleSubscriptionDeleted(ctx, event)
	case "customer.subscription.trial_will_end":
		return h.handleTrialWillEnd(ctx, event)
	case "invoice.payment_failed":
		return h.handlePaymentFailed(ctx, event)
	case "invoice.payment_succeeded":
		return h.handlePaymentSucceeded(ctx, event)
	case "invoice.upcoming":
		return h.handleInvoiceUpcoming(ctx, event)
	default:
		// Acknowledge unknown events to avoid retries.
		h.log.Info("unhandled webhook event", "type", event.Type)
		return nil
	}
}

func readBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}

// customerEmail resolves the paying customer's email for notification
// composition. The adapter maps deleted/empty records to sentinel addresses,
// so an error here is a real provider failure worth retrying.
func (h *Handler) customerEmail(ctx context.Context, cus *stripe.Customer) (string, error) {
	if cus == nil {
		return "", errEventMissingCustomer
	}
	return h.billing.CustomerEmail(ctx, cus.ID)
}
