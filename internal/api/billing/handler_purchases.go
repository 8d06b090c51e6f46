package billing

import (
	"net/http"

	"restoration-app/database"
	billingdomain "restoration-app/internal/domain/billing"

	"github.com/gin-gonic/gin"
)

// GetPurchaseHistory lists the account's applied addon purchases, newest
// first.
func GetPurchaseHistory(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if !database.AddonLedgerAvailable {
		c.JSON(http.StatusOK, []billingdomain.AddonPurchase{})
		return
	}

	var purchases []billingdomain.AddonPurchase
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&purchases).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load purchases"})
		return
	}

	c.JSON(http.StatusOK, purchases)
}
