package admin

import (
	"net/http"
	"strconv"
	"time"

	"restoration-app/database"
	"restoration-app/internal/domain/billing"
	"restoration-app/internal/domain/entitlement"
	"restoration-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	zlog "github.com/rs/zerolog/log"
)

type AdminUser struct {
	ID                 uint    `json:"id"`
	Name               string  `json:"name"`
	Lastname           string  `json:"lastname"`
	Email              string  `json:"email"`
	Role               string  `json:"role"`
	SubscriptionStatus string  `json:"subscription_status"`
	SubscriptionPlan   *string `json:"subscription_plan,omitempty"`
	StripeCustomerID   *string `json:"stripe_customer_id,omitempty"`
	StripeSubID        *string `json:"stripe_subscription_id,omitempty"`
	CreditsRemaining   int     `json:"credits_remaining"`
	AddonReportCredits int     `json:"addon_report_credits"`
	MonthlyReportsUsed int     `json:"monthly_reports_used"`
	LifetimeAccess     bool    `json:"lifetime_access"`
}

func AdminDashboard(c *gin.Context) {
	var totalUsers int64
	database.DB.Model(&users.User{}).Count(&totalUsers)

	var activeSubs int64
	database.DB.Model(&users.User{}).
		Where("subscription_status = ?", entitlement.StatusActive).
		Count(&activeSubs)

	var purchases int64
	if database.AddonLedgerAvailable {
		database.DB.Model(&billing.AddonPurchase{}).Count(&purchases)
	}

	c.JSON(http.StatusOK, gin.H{
		"total_users":          totalUsers,
		"active_subscriptions": activeSubs,
		"addon_purchases":      purchases,
	})
}

func ListAllUsers(c *gin.Context) {
	var rows []users.User
	if err := database.DB.Order("created_at DESC").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	out := make([]AdminUser, 0, len(rows))
	for _, u := range rows {
		out = append(out, AdminUser{
			ID:                 u.ID,
			Name:               u.Name,
			Lastname:           u.Lastname,
			Email:              u.Email,
			Role:               u.Role,
			SubscriptionStatus: u.SubscriptionStatus,
			SubscriptionPlan:   u.SubscriptionPlan,
			StripeCustomerID:   u.StripeCustomerID,
			StripeSubID:        u.SubscriptionId,
			CreditsRemaining:   u.CreditsRemaining,
			AddonReportCredits: u.AddonReportCredits,
			MonthlyReportsUsed: u.MonthlyReportsUsed,
			LifetimeAccess:     u.LifetimeAccess,
		})
	}
	c.JSON(http.StatusOK, out)
}

func ListAllPurchases(c *gin.Context) {
	if !database.AddonLedgerAvailable {
		c.JSON(http.StatusOK, []billing.AddonPurchase{})
		return
	}

	var purchases []billing.AddonPurchase
	if err := database.DB.Order("created_at DESC").Limit(200).Find(&purchases).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load purchases"})
		return
	}
	c.JSON(http.StatusOK, purchases)
}

// GrantLifetimeAccess is the administrative override for lifetime
// entitlement, replacing any need to special-case accounts in code.
func GrantLifetimeAccess(c *gin.Context) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id64 == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}
	userID := uint(id64)

	var user users.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := database.DB.Model(&users.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"lifetime_access":     true,
			"subscription_status": entitlement.StatusActive,
			"subscription_plan":   "Lifetime",
		}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to grant lifetime access"})
		return
	}

	zlog.Info().Uint("user_id", userID).Str("admin", c.GetString("email")).Msg("lifetime access granted by admin")
	c.JSON(http.StatusOK, gin.H{"message": "Lifetime access granted", "updated_at": time.Now()})
}
