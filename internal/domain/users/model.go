package users

import (
	"time"
)

// User is the tenant/billing unit. Entitlement fields are mutated only by the
// entitlement service (subscription sync, addon reconciliation) and the report
// credit consumer.
type User struct {
	ID           uint `gorm:"primaryKey"`
	Name         string
	Lastname     string
	CompanyName  string
	Tel          string
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password     *string `gorm:""`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub"`
	Role         string

	// Subscription state. Invariant: status "active" implies either a live
	// Stripe subscription reference or LifetimeAccess.
	SubscriptionStatus string  `gorm:"column:subscription_status;type:varchar(20);not null;default:'trial'"`
	SubscriptionPlan   *string `gorm:"column:subscription_plan"`
	StripeCustomerID   *string `gorm:"column:stripe_customer_id;uniqueIndex:idx_users_stripe_customer_id"`
	SubscriptionId     *string `gorm:"column:subscription_id;uniqueIndex:idx_users_subscription_id"`

	SubscriptionEndsAt *time.Time `gorm:"column:subscription_ends_at"`
	LastBillingDate    *time.Time `gorm:"column:last_billing_date"`
	NextBillingDate    *time.Time `gorm:"column:next_billing_date"`

	// Trial-era pool. Monotonic: remaining only decrements, used only increments.
	CreditsRemaining int `gorm:"column:credits_remaining;not null;default:0"`
	TotalCreditsUsed int `gorm:"column:total_credits_used;not null;default:0"`

	// Addon pool, replenished by completed addon purchases and the one-time
	// signup bonus. Independent from CreditsRemaining; never conflated.
	AddonReportCredits int `gorm:"column:addon_report_credits;not null;default:0"`

	MonthlyReportsUsed int        `gorm:"column:monthly_reports_used;not null;default:0"`
	MonthlyResetDate   *time.Time `gorm:"column:monthly_reset_date"`

	// Guards the one-time signup bonus. false -> true exactly once, on the
	// first sync that finds the subscription active.
	SignupBonusApplied bool `gorm:"column:signup_bonus_applied;not null;default:false"`

	// Permanent override: satisfies "has active entitlement" regardless of any
	// subscription lookup.
	LifetimeAccess bool `gorm:"column:lifetime_access;not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
