package stripe

import (
	"restoration-app/internal/domain/entitlement"

	stripego "github.com/stripe/stripe-go/v75"
)

// InternalStatus maps a raw Stripe subscription status to the internal
// subscription_status enum on the user row.
func InternalStatus(s stripego.SubscriptionStatus) string {
	switch s {
	case stripego.SubscriptionStatusActive, stripego.SubscriptionStatusTrialing:
		return entitlement.StatusActive
	case stripego.SubscriptionStatusPastDue, stripego.SubscriptionStatusUnpaid:
		return entitlement.StatusPastDue
	case stripego.SubscriptionStatusCanceled, stripego.SubscriptionStatusIncompleteExpired:
		return entitlement.StatusCancelled
	default:
		return string(s)
	}
}
