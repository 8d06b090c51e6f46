package billing

import (
	"errors"
	"net/http"

	"restoration-app/internal/domain/entitlement"

	"github.com/gin-gonic/gin"
)

// SyncSubscription pulls the authoritative subscription state from Stripe and
// folds it into the account. Called from the account page and after checkout.
func SyncSubscription(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	state, err := svc().SyncSubscriptionState(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, entitlement.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "No active subscription"})
		case errors.Is(err, entitlement.ErrExternalService):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment provider unavailable"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync subscription"})
		}
		return
	}

	c.JSON(http.StatusOK, state)
}
