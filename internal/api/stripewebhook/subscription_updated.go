package stripewebhooks

import (
	"errors"
	"strconv"
	"time"

	"restoration-app/database"
	"restoration-app/internal/domain/entitlement"
	"restoration-app/internal/domain/users"
	stripeinfra "restoration-app/internal/infra/stripe"

	"github.com/gin-gonic/gin"
	stripego "github.com/stripe/stripe-go/v75"
)

// handleSubscriptionUpdated folds a subscription status change into the
// ledger. Active states route through the full sync (plan label, reset date,
// one-time bonus guard); everything else is a plain status write.
func handleSubscriptionUpdated(c *gin.Context, sub *stripego.Subscription) error {
	if sub.ID == "" {
		return nil
	}

	userID := resolveSubscriptionUser(sub)
	if userID == 0 {
		// Acknowledge to avoid retries when the user is already gone.
		return nil
	}

	ctx := c.Request.Context()

	switch sub.Status {
	case stripego.SubscriptionStatusActive, stripego.SubscriptionStatusTrialing:
		_, err := svc().SyncSubscriptionState(ctx, userID)
		if errors.Is(err, entitlement.ErrNotFound) {
			return nil
		}
		return err
	default:
		status := stripeinfra.InternalStatus(sub.Status)
		periodEnd := time.Unix(sub.CurrentPeriodEnd, 0)
		return svc().MarkSubscriptionEnded(ctx, userID, status, periodEnd)
	}
}

// resolveSubscriptionUser prefers metadata.userId, falling back to the stored
// subscription reference.
func resolveSubscriptionUser(sub *stripego.Subscription) uint {
	if sub.Metadata != nil {
		if s := sub.Metadata["userId"]; s != "" {
			if id, err := strconv.ParseUint(s, 10, 64); err == nil {
				return uint(id)
			}
		}
	}

	var user users.User
	if err := database.DB.Where("subscription_id = ?", sub.ID).First(&user).Error; err != nil {
		return 0
	}
	return user.ID
}
