package entitlement

import "time"

// Subscription status values stored on the user row.
const (
	StatusTrial     = "trial"
	StatusActive    = "active"
	StatusPastDue   = "past_due"
	StatusCancelled = "cancelled"
)

const (
	// One-time bonus added to the addon pool the first time a subscription
	// goes active.
	SignupBonusCredits = 10

	// Trial pool granted at signup.
	TrialCredits = 3

	// Upper bound for checkout-session and subscription listings.
	sweepLimit = 10

	// Degraded-mode window: without the addon_purchases table the only
	// duplicate protection is "session must be recent".
	degradedWindow = 10 * time.Minute
)

// Checkout-session metadata keys written at checkout creation and read back
// during reconciliation.
const (
	metaType         = "type"
	metaUserID       = "userId"
	metaAddonKey     = "addonKey"
	metaAddonReports = "addonReports"
	metaAddonName    = "addonName"

	sessionTypeAddon    = "addon"
	sessionTypeLifetime = "lifetime"
)

// ReconcileResult reports the outcome of a pending-purchase sweep. Processed
// counts only sessions applied by this call; already-processed and malformed
// sessions are skipped without failing the sweep.
type ReconcileResult struct {
	Processed            int `json:"processed"`
	AddonCredits         int `json:"addon_credits"`
	PreviousAddonCredits int `json:"previous_addon_credits"`
}

// VerifyResult reports a targeted single-session verification.
type VerifyResult struct {
	CreditsGranted int `json:"credits_granted"`
	AddonCredits   int `json:"addon_credits"`
}

// SubscriptionState is what callers get back from a sync.
type SubscriptionState struct {
	Status           string `json:"status"`
	Plan             string `json:"plan"`
	CreditsRemaining int    `json:"credits_remaining"`
	AddonCredits     int    `json:"addon_credits"`
	Unlimited        bool   `json:"unlimited"`
}

// SubscriptionUpdate is the single write the synchronizer applies to the user
// row. The bonus increment rides in the same update so a crash between "grant
// bonus" and "mark applied" cannot double-grant.
type SubscriptionUpdate struct {
	Status               string
	Plan                 string
	StripeCustomerID     string
	StripeSubscriptionID string
	PeriodStart          time.Time
	PeriodEnd            time.Time
	MonthlyResetDate     time.Time
	BonusCredits         int
	MarkBonusApplied     bool
}

// ConsumptionKind says which pool pays for one new report.
type ConsumptionKind int

const (
	ConsumeUnlimited ConsumptionKind = iota // lifetime accounts, no counter touched
	ConsumeMonthly                          // monthly_reports_used + 1
	ConsumeMonthlyRollover                  // new period: monthly_reports_used = 1, new reset date
	ConsumeTrial                            // credits_remaining - 1, total_credits_used + 1
	ConsumeAddon                            // addon_report_credits - 1
)
