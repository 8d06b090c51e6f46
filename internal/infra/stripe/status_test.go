package stripe

import (
	"testing"

	"restoration-app/internal/domain/entitlement"

	"github.com/stretchr/testify/assert"
	stripego "github.com/stripe/stripe-go/v75"
)

func TestInternalStatus(t *testing.T) {
	assert.Equal(t, entitlement.StatusActive, InternalStatus(stripego.SubscriptionStatusActive))
	assert.Equal(t, entitlement.StatusActive, InternalStatus(stripego.SubscriptionStatusTrialing))
	assert.Equal(t, entitlement.StatusPastDue, InternalStatus(stripego.SubscriptionStatusPastDue))
	assert.Equal(t, entitlement.StatusPastDue, InternalStatus(stripego.SubscriptionStatusUnpaid))
	assert.Equal(t, entitlement.StatusCancelled, InternalStatus(stripego.SubscriptionStatusCanceled))
	assert.Equal(t, entitlement.StatusCancelled, InternalStatus(stripego.SubscriptionStatusIncompleteExpired))
	assert.Equal(t, "paused", InternalStatus(stripego.SubscriptionStatusPaused))
}
