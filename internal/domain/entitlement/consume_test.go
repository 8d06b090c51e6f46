package entitlement

import (
	"context"
	"testing"
	"time"

	"restoration-app/internal/domain/plans"
	"restoration-app/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecideConsumption(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	future := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	past := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	lifetime := plans.PlanLifetime

	cases := []struct {
		name string
		user users.User
		want ConsumptionKind
		err  error
	}{
		{
			name: "lifetime access is unlimited",
			user: users.User{LifetimeAccess: true},
			want: ConsumeUnlimited,
		},
		{
			name: "lifetime plan label is unlimited",
			user: users.User{SubscriptionStatus: StatusActive, SubscriptionPlan: &lifetime},
			want: ConsumeUnlimited,
		},
		{
			name: "active under quota uses monthly",
			user: users.User{SubscriptionStatus: StatusActive, MonthlyReportsUsed: 5, MonthlyResetDate: &future},
			want: ConsumeMonthly,
		},
		{
			name: "active past reset date rolls the period",
			user: users.User{SubscriptionStatus: StatusActive, MonthlyReportsUsed: plans.MonthlyReportLimit, MonthlyResetDate: &past},
			want: ConsumeMonthlyRollover,
		},
		{
			name: "active at quota falls back to addon pool",
			user: users.User{SubscriptionStatus: StatusActive, MonthlyReportsUsed: plans.MonthlyReportLimit, MonthlyResetDate: &future, AddonReportCredits: 2},
			want: ConsumeAddon,
		},
		{
			name: "active at quota with empty addon pool",
			user: users.User{SubscriptionStatus: StatusActive, MonthlyReportsUsed: plans.MonthlyReportLimit, MonthlyResetDate: &future},
			err:  ErrNoCredits,
		},
		{
			name: "trial spends trial credits first",
			user: users.User{SubscriptionStatus: StatusTrial, CreditsRemaining: 2, AddonReportCredits: 5},
			want: ConsumeTrial,
		},
		{
			name: "exhausted trial falls back to addon pool",
			user: users.User{SubscriptionStatus: StatusTrial, AddonReportCredits: 5},
			want: ConsumeAddon,
		},
		{
			name: "cancelled account keeps addon pool access",
			user: users.User{SubscriptionStatus: StatusCancelled, AddonReportCredits: 1},
			want: ConsumeAddon,
		},
		{
			name: "nothing left",
			user: users.User{SubscriptionStatus: StatusTrial},
			err:  ErrNoCredits,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kind, err := DecideConsumption(now, &tc.user)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, kind)
		})
	}
}

func TestConsumeReportCreditMonthly(t *testing.T) {
	user := trialUser(1, "a@b.test")
	user.SubscriptionStatus = StatusActive
	reset := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	user.MonthlyResetDate = &reset
	user.MonthlyReportsUsed = 7

	acc := newFakeAccounts(user)
	svc := newTestService(acc, newFakeLedger(), newFakeStripe())
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC) }

	require.NoError(t, svc.ConsumeReportCredit(context.Background(), 1))

	u, _ := acc.Get(context.Background(), 1)
	assert.Equal(t, 8, u.MonthlyReportsUsed)
	assert.Equal(t, TrialCredits, u.CreditsRemaining)
}

func TestConsumeReportCreditRollsPeriodOver(t *testing.T) {
	user := trialUser(1, "a@b.test")
	user.SubscriptionStatus = StatusActive
	reset := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	user.MonthlyResetDate = &reset
	user.MonthlyReportsUsed = plans.MonthlyReportLimit

	acc := newFakeAccounts(user)
	svc := newTestService(acc, newFakeLedger(), newFakeStripe())
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC) }

	require.NoError(t, svc.ConsumeReportCredit(context.Background(), 1))

	u, _ := acc.Get(context.Background(), 1)
	assert.Equal(t, 1, u.MonthlyReportsUsed)
	require.NotNil(t, u.MonthlyResetDate)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), *u.MonthlyResetDate)
}

func TestConsumeReportCreditTrialThenAddon(t *testing.T) {
	user := trialUser(1, "a@b.test")
	user.CreditsRemaining = 1
	user.AddonReportCredits = 1

	acc := newFakeAccounts(user)
	svc := newTestService(acc, newFakeLedger(), newFakeStripe())

	require.NoError(t, svc.ConsumeReportCredit(context.Background(), 1))
	u, _ := acc.Get(context.Background(), 1)
	assert.Zero(t, u.CreditsRemaining)
	assert.Equal(t, 1, u.TotalCreditsUsed)
	assert.Equal(t, 1, u.AddonReportCredits)

	require.NoError(t, svc.ConsumeReportCredit(context.Background(), 1))
	u, _ = acc.Get(context.Background(), 1)
	assert.Zero(t, u.AddonReportCredits)

	require.ErrorIs(t, svc.ConsumeReportCredit(context.Background(), 1), ErrNoCredits)
}

func TestConsumeReportCreditUnlimitedTouchesNothing(t *testing.T) {
	user := trialUser(1, "a@b.test")
	user.LifetimeAccess = true
	user.CreditsRemaining = 2

	acc := newFakeAccounts(user)
	svc := newTestService(acc, newFakeLedger(), newFakeStripe())

	require.NoError(t, svc.ConsumeReportCredit(context.Background(), 1))

	u, _ := acc.Get(context.Background(), 1)
	assert.Equal(t, 2, u.CreditsRemaining)
	assert.Zero(t, u.MonthlyReportsUsed)
}

func TestCanCreateReport(t *testing.T) {
	withCredits := trialUser(1, "a@b.test")
	broke := trialUser(2, "c@d.test")
	broke.CreditsRemaining = 0

	acc := newFakeAccounts(withCredits, broke)
	svc := newTestService(acc, newFakeLedger(), newFakeStripe())

	assert.NoError(t, svc.CanCreateReport(context.Background(), 1))
	assert.ErrorIs(t, svc.CanCreateReport(context.Background(), 2), ErrNoCredits)
}
