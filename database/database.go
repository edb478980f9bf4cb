package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"wyckoffpro-backend/internal/domain/events"
)

// Open connects to Postgres and migrates the webhook-state schema. The
// database is optional: callers skip Open entirely when no DSN is
// configured, and the webhook processor then re-sends duplicate
// cancellation notices instead of deduplicating them.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}

	if err := db.AutoMigrate(&events.CancellationNotice{}); err != nil {
		return nil, fmt.Errorf("database: migrate: %w", err)
	}
	return db, nil
}
