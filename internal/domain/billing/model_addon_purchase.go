package billing

import (
	"time"
)

// AddonPurchase is the idempotency row for addon report-pack purchases. One
// row per successfully applied Stripe checkout session; rows are terminal once
// written (status "completed", never updated).
//
// The unique index on StripeSessionID is the concurrency primitive for the
// whole reconciliation path: the row is inserted BEFORE the credit increment,
// so a concurrent duplicate fails the insert and is treated as already
// processed.
type AddonPurchase struct {
	ID              uint   `gorm:"primaryKey"`
	UserID          uint   `gorm:"not null;index"`
	StripeSessionID string `gorm:"column:stripe_session_id;not null;uniqueIndex:idx_addon_purchases_session"`
	AddonKey        string `gorm:"column:addon_key;not null"`
	AddonName       string `gorm:"column:addon_name"`
	ReportCredits   int    `gorm:"column:report_credits;not null"`
	AmountTotal     int64  `gorm:"column:amount_total"`
	Currency        string `gorm:"column:currency"`
	Status          string `gorm:"column:status;not null;default:'completed'"`
	CreatedAt       time.Time
}

const StatusCompleted = "completed"
