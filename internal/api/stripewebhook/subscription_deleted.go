package stripewebhooks

import (
	"time"

	"restoration-app/internal/domain/entitlement"

	"github.com/gin-gonic/gin"
	stripego "github.com/stripe/stripe-go/v75"
)

func handleSubscriptionDeleted(c *gin.Context, sub *stripego.Subscription) error {
	if sub.ID == "" {
		return nil
	}

	userID := resolveSubscriptionUser(sub)
	if userID == 0 {
		return nil
	}

	periodEnd := time.Unix(sub.CurrentPeriodEnd, 0)
	return svc().MarkSubscriptionEnded(c.Request.Context(), userID, entitlement.StatusCancelled, periodEnd)
}
