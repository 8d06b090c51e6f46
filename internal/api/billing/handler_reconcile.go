package billing

import (
	"errors"
	"net/http"

	"restoration-app/internal/domain/entitlement"

	"github.com/gin-gonic/gin"
)

// ReconcilePendingAddons sweeps the account's recent checkout sessions for
// paid addon purchases that never got credited (missed webhook, closed tab).
func ReconcilePendingAddons(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	result, err := svc().ReconcilePendingAddons(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, entitlement.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, entitlement.ErrExternalService):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment provider unavailable"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reconcile purchases"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
