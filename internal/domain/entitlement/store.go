package entitlement

import (
	"context"
	"time"

	"restoration-app/internal/domain/billing"
	"restoration-app/internal/domain/users"

	"github.com/stripe/stripe-go/v75"
)

// AccountStore is the persistence contract for per-account entitlement state.
// All mutations are single-row, last-writer-wins, persisted immediately.
type AccountStore interface {
	Get(ctx context.Context, id uint) (*users.User, error)
	SetStripeCustomerID(ctx context.Context, id uint, customerID string) error

	// GrantAddonCredits atomically adds qty to the addon pool. At-most-once
	// per purchase is enforced by the caller through the purchase ledger, not
	// here.
	GrantAddonCredits(ctx context.Context, id uint, qty int) error

	// ApplySubscription overwrites subscription fields, zeroes the monthly
	// counter and applies the optional signup bonus in one update.
	ApplySubscription(ctx context.Context, id uint, up SubscriptionUpdate) error

	GrantLifetimeAccess(ctx context.Context, id uint) error

	// SetSubscriptionEnded records a cancellation/expiry status change without
	// touching counters or credit pools.
	SetSubscriptionEnded(ctx context.Context, id uint, status string, periodEnd time.Time) error

	// ApplyConsumption debits one report from the pool picked by
	// DecideConsumption. nextReset is set only for ConsumeMonthlyRollover.
	ApplyConsumption(ctx context.Context, id uint, kind ConsumptionKind, nextReset *time.Time) error
}

// PurchaseLedger is the idempotency-row table. Insert must fail with
// ErrAlreadyProcessed when a row for the same Stripe session already exists.
// Available reports whether the table exists at all; it is resolved once at
// startup, not probed per request.
type PurchaseLedger interface {
	Available() bool
	Insert(ctx context.Context, p *billing.AddonPurchase) error
	ListByUser(ctx context.Context, userID uint) ([]billing.AddonPurchase, error)
}

// StripeAPI is the slice of the payment processor the entitlement core
// consumes. Implementations should return ErrNotFound (wrapped) for missing
// resources so callers can tell "gone" from "unreachable".
type StripeAPI interface {
	GetCheckoutSession(ctx context.Context, id string) (*stripe.CheckoutSession, error)
	ListCheckoutSessions(ctx context.Context, customerID string, limit int64) ([]*stripe.CheckoutSession, error)
	ListSubscriptions(ctx context.Context, customerID string, limit int64) ([]*stripe.Subscription, error)
	FindCustomerByEmail(ctx context.Context, email string) (string, error)
}
