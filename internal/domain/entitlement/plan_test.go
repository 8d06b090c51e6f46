package entitlement

import (
	"testing"
	"time"

	"restoration-app/internal/domain/users"

	"github.com/stretchr/testify/assert"
)

func TestNextMonthlyReset(t *testing.T) {
	cases := []struct {
		now  time.Time
		want time.Time
	}{
		{
			now:  time.Date(2026, 3, 15, 13, 45, 0, 0, time.UTC),
			want: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			// December rolls into January of the next year.
			now:  time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC),
			want: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			// Exactly at a reset moment the next one is a month out.
			now:  time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
			want: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NextMonthlyReset(tc.now))
	}
}

func TestFirstActivation(t *testing.T) {
	billed := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, firstActivation(&users.User{SubscriptionStatus: StatusTrial}))
	assert.True(t, firstActivation(&users.User{SubscriptionStatus: StatusCancelled}))
	assert.True(t, firstActivation(&users.User{SubscriptionStatus: StatusActive}))

	// The persisted flag always wins.
	assert.False(t, firstActivation(&users.User{SubscriptionStatus: StatusTrial, SignupBonusApplied: true}))

	// Active and previously billed means this is a renewal sync.
	assert.False(t, firstActivation(&users.User{SubscriptionStatus: StatusActive, LastBillingDate: &billed}))
	assert.True(t, firstActivation(&users.User{SubscriptionStatus: StatusCancelled, LastBillingDate: &billed}))
}

func TestBuildSnapshot(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	trial := users.User{SubscriptionStatus: StatusTrial, CreditsRemaining: 3}
	snap := BuildSnapshot(now, trial)
	assert.Equal(t, StatusTrial, snap.Status)
	assert.False(t, snap.Unlimited)
	assert.True(t, snap.CanCreateReport)

	broke := users.User{SubscriptionStatus: StatusTrial}
	snap = BuildSnapshot(now, broke)
	assert.False(t, snap.CanCreateReport)

	life := users.User{SubscriptionStatus: StatusCancelled, LifetimeAccess: true}
	snap = BuildSnapshot(now, life)
	assert.True(t, snap.Unlimited)
	assert.Equal(t, StatusActive, snap.Status)
	assert.Equal(t, "Lifetime", snap.Plan)
	assert.True(t, snap.CanCreateReport)
}
