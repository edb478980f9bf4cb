package events

import "time"

// CancellationNotice records that the cancellation-scheduled email for a
// subscription id has already gone out. Webhook delivery is at-least-once
// and update events re-assert cancel_at_period_end on every change, so
// without this row the same customer is re-notified on each delivery.
type CancellationNotice struct {
	SubscriptionID string    `gorm:"primaryKey;size:255"`
	NotifiedAt     time.Time `gorm:"autoCreateTime"`
}
