package entitlement

import (
	"time"

	"restoration-app/internal/domain/users"

	"github.com/stripe/stripe-go/v75"
)

// NextMonthlyReset returns the first day of the next calendar month at
// midnight UTC, the moment the monthly report counter zeroes.
func NextMonthlyReset(now time.Time) time.Time {
	y, m, _ := now.UTC().Date()
	return time.Date(y, m+1, 1, 0, 0, 0, 0, time.UTC)
}

// firstActivation decides whether this sync is the subscription's first
// transition to active. The persisted flag wins when set; otherwise the
// heuristic is "was not active before, or never billed".
func firstActivation(u *users.User) bool {
	if u.SignupBonusApplied {
		return false
	}
	return u.SubscriptionStatus != StatusActive || u.LastBillingDate == nil
}

// pickCurrentSubscription selects the most-recently-created subscription that
// is active or trialing. The list comes back with status=all, so cancelled
// and incomplete ones are filtered here.
func pickCurrentSubscription(subs []*stripe.Subscription) *stripe.Subscription {
	var best *stripe.Subscription
	for _, sub := range subs {
		if sub == nil {
			continue
		}
		if sub.Status != stripe.SubscriptionStatusActive && sub.Status != stripe.SubscriptionStatusTrialing {
			continue
		}
		if best == nil || sub.Created > best.Created {
			best = sub
		}
	}
	return best
}

// subscriptionInterval digs the billing interval out of the first item.
// Missing pieces fall through to "" which maps to the monthly plan.
func subscriptionInterval(sub *stripe.Subscription) string {
	if sub.Items == nil || len(sub.Items.Data) == 0 {
		return ""
	}
	price := sub.Items.Data[0].Price
	if price == nil || price.Recurring == nil {
		return ""
	}
	return string(price.Recurring.Interval)
}
