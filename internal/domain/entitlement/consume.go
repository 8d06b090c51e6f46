package entitlement

import (
	"context"
	"time"

	"restoration-app/internal/domain/plans"
	"restoration-app/internal/domain/users"
)

// DecideConsumption picks which pool pays for one new report. Pure; the
// caller applies the matching mutation.
//
// Order: lifetime accounts are unlimited; active subscribers draw on the
// monthly quota (rolling the period over when past the reset date) and fall
// back to the addon pool; everyone else spends trial credits first, then the
// addon pool.
func DecideConsumption(now time.Time, u *users.User) (ConsumptionKind, error) {
	if u.LifetimeAccess || (u.SubscriptionPlan != nil && plans.Unlimited(*u.SubscriptionPlan)) {
		return ConsumeUnlimited, nil
	}

	if u.SubscriptionStatus == StatusActive {
		if u.MonthlyResetDate != nil && !now.Before(*u.MonthlyResetDate) {
			return ConsumeMonthlyRollover, nil
		}
		if u.MonthlyReportsUsed < plans.MonthlyReportLimit {
			return ConsumeMonthly, nil
		}
		if u.AddonReportCredits > 0 {
			return ConsumeAddon, nil
		}
		return 0, ErrNoCredits
	}

	if u.CreditsRemaining > 0 {
		return ConsumeTrial, nil
	}
	if u.AddonReportCredits > 0 {
		return ConsumeAddon, nil
	}
	return 0, ErrNoCredits
}

// ConsumeReportCredit debits one report from the account, or returns
// ErrNoCredits when every pool is exhausted.
func (s *Service) ConsumeReportCredit(ctx context.Context, accountID uint) error {
	user, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return err
	}

	kind, err := DecideConsumption(s.now(), user)
	if err != nil {
		return err
	}
	if kind == ConsumeUnlimited {
		return nil
	}

	var nextReset *time.Time
	if kind == ConsumeMonthlyRollover {
		t := NextMonthlyReset(s.now())
		nextReset = &t
	}
	return s.accounts.ApplyConsumption(ctx, accountID, kind, nextReset)
}

// CanCreateReport is the read-only form used by the route guard.
func (s *Service) CanCreateReport(ctx context.Context, accountID uint) error {
	user, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return err
	}
	_, err = DecideConsumption(s.now(), user)
	return err
}
