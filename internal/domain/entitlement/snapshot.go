package entitlement

import (
	"time"

	"restoration-app/internal/domain/plans"
	"restoration-app/internal/domain/users"
)

// Snapshot is the read-only entitlement view handed to page code.
type Snapshot struct {
	Status             string     `json:"status"`
	Plan               string     `json:"plan,omitempty"`
	Unlimited          bool       `json:"unlimited"`
	CreditsRemaining   int        `json:"credits_remaining"`
	AddonReportCredits int        `json:"addon_report_credits"`
	MonthlyReportsUsed int        `json:"monthly_reports_used"`
	MonthlyReportLimit int        `json:"monthly_report_limit"`
	MonthlyResetDate   *time.Time `json:"monthly_reset_date,omitempty"`
	SubscriptionEndsAt *time.Time `json:"subscription_ends_at,omitempty"`
	CanCreateReport    bool       `json:"can_create_report"`
}

// BuildSnapshot derives the effective entitlement view from the stored row.
func BuildSnapshot(now time.Time, u users.User) Snapshot {
	plan := ""
	if u.SubscriptionPlan != nil {
		plan = *u.SubscriptionPlan
	}

	snap := Snapshot{
		Status:             u.SubscriptionStatus,
		Plan:               plan,
		Unlimited:          u.LifetimeAccess || plans.Unlimited(plan),
		CreditsRemaining:   u.CreditsRemaining,
		AddonReportCredits: u.AddonReportCredits,
		MonthlyReportsUsed: u.MonthlyReportsUsed,
		MonthlyReportLimit: plans.MonthlyReportLimit,
		MonthlyResetDate:   u.MonthlyResetDate,
		SubscriptionEndsAt: u.SubscriptionEndsAt,
	}
	if snap.Unlimited {
		snap.Status = StatusActive
		snap.Plan = plans.PlanLifetime
	}

	_, err := DecideConsumption(now, &u)
	snap.CanCreateReport = err == nil
	return snap
}
