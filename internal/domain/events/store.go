package events

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NoticeStore persists cancellation notices.
type NoticeStore struct {
	db *gorm.DB
}

func NewNoticeStore(db *gorm.DB) *NoticeStore {
	return &NoticeStore{db: db}
}

// AlreadyNotified reports whether the cancellation email for this
// subscription has been recorded. Lookup failures count as not-notified; a
// duplicate email is preferable to a missed one.
func (s *NoticeStore) AlreadyNotified(subscriptionID string) bool {
	var notice CancellationNotice
	err := s.db.First(&notice, "subscription_id = ?", subscriptionID).Error
	return err == nil
}

// MarkNotified records the notice, tolerating concurrent duplicates.
func (s *NoticeStore) MarkNotified(subscriptionID string) error {
	err := s.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&CancellationNotice{SubscriptionID: subscriptionID}).Error
	if err != nil {
		return fmt.Errorf("events: record notice: %w", err)
	}
	return nil
}
