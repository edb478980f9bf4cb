package subscription

import (
	"time"

	"github.com/stripe/stripe-go/v76"
)

// SubscriptionView is the dashboard's normalized projection of billing
// state. Queried fresh on every load, never cached.
type SubscriptionView struct {
	HasSubscription bool `json:"hasSubscription"`
	// IsNewUser distinguishes "never reached billing" from "had a
	// subscription, now lapsed" so the dashboard can show checkout
	// instead of a renewal prompt.
	IsNewUser    bool     `json:"isNewUser"`
	State        string   `json:"state"`
	Subscription *Details `json:"subscription,omitempty"`
}

// Details mirrors the subset of the provider's subscription record the UI
// renders. Timestamps are ISO-8601 strings.
type Details struct {
	ID                string  `json:"id"`
	Status            string  `json:"status"`
	CurrentPeriodEnd  string  `json:"currentPeriodEnd"`
	CancelAtPeriodEnd bool    `json:"cancelAtPeriodEnd"`
	TrialEnd          *string `json:"trialEnd"`
}

// Plan states derived from a view.
const (
	StateNone      = "none"
	StateTrialing  = "trialing"
	StateActive    = "active"
	StateCanceling = "canceling"
	StateExpired   = "expired"
)

func (v SubscriptionView) state() string {
	switch {
	case !v.HasSubscription && v.IsNewUser:
		return StateNone
	case !v.HasSubscription:
		return StateExpired
	case v.Subscription != nil && v.Subscription.CancelAtPeriodEnd:
		return StateCanceling
	case v.Subscription != nil && v.Subscription.Status == string(stripe.SubscriptionStatusTrialing):
		return StateTrialing
	default:
		return StateActive
	}
}

func detailsFrom(sub *stripe.Subscription) *Details {
	d := &Details{
		ID:                sub.ID,
		Status:            string(sub.Status),
		CurrentPeriodEnd:  isoTime(sub.CurrentPeriodEnd),
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
	}
	if sub.TrialEnd > 0 {
		t := isoTime(sub.TrialEnd)
		d.TrialEnd = &t
	}
	return d
}

func isoTime(unix int64) string {
	return time.Unix(unix, 0).UTC().Format(time.RFC3339)
}
