package billing

import (
	"errors"
	"net/http"

	"restoration-app/database"
	"restoration-app/internal/domain/entitlement"
	"restoration-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// VerifyAddonSession confirms one checkout session the client just paid for
// and credits the addon pool exactly once.
func VerifyAddonSession(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var body struct {
		SessionID string `json:"session_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid session_id"})
		return
	}

	result, err := svc().VerifyAddonSession(c.Request.Context(), userID, body.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, entitlement.ErrAlreadyProcessed):
			// No-op success so client-side retries stay simple.
			var user users.User
			current := 0
			if dbErr := database.DB.Where("id = ?", userID).First(&user).Error; dbErr == nil {
				current = user.AddonReportCredits
			}
			c.JSON(http.StatusOK, gin.H{
				"already_processed": true,
				"credits_granted":   0,
				"addon_credits":     current,
			})
		case errors.Is(err, entitlement.ErrUnauthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": "Session does not belong to this account"})
		case errors.Is(err, entitlement.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Checkout session not found"})
		case errors.Is(err, entitlement.ErrNotAddon):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Not an addon purchase session"})
		case errors.Is(err, entitlement.ErrPaymentIncomplete):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "Payment not completed"})
		case errors.Is(err, entitlement.ErrMalformedPurchase):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid addon purchase data"})
		case errors.Is(err, entitlement.ErrExternalService):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment provider unavailable"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify session"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"already_processed": false,
		"credits_granted":   result.CreditsGranted,
		"addon_credits":     result.AddonCredits,
	})
}
