package middleware

import (
	"errors"
	"net/http"
	"time"

	"restoration-app/database"
	"restoration-app/internal/domain/entitlement"
	"restoration-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// RequireReportCapacity rejects report creation when every credit pool is
// exhausted. The actual debit happens in the handler; this is the cheap
// front-door check.
func RequireReportCapacity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		if userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
			return
		}

		var user users.User
		if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		if _, err := entitlement.DecideConsumption(time.Now(), &user); err != nil {
			if errors.Is(err, entitlement.ErrNoCredits) {
				c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{
					"error": "No report credits remaining. Purchase a report pack or upgrade your plan.",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to check report quota"})
			return
		}

		c.Next()
	}
}
