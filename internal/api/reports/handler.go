package reports

import (
	"errors"
	"net/http"

	"restoration-app/config"
	"restoration-app/database"
	"restoration-app/internal/domain/entitlement"
	"restoration-app/internal/domain/reports"
	"restoration-app/internal/infra/store"
	stripeinfra "restoration-app/internal/infra/stripe"

	"github.com/gin-gonic/gin"
	zlog "github.com/rs/zerolog/log"
)

// CreateReport debits one report credit and creates the row. The quota
// middleware already rejected accounts with nothing left, but the debit here
// re-checks so a race between two creations cannot go negative silently.
func CreateReport(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var input struct {
		Title      string `json:"title" binding:"required"`
		DamageType string `json:"damage_type"`
		ClientName string `json:"client_name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	st := store.NewGorm(database.DB, database.AddonLedgerAvailable)
	svc := entitlement.NewService(st, st, stripeinfra.Client{}, config.LIFETIME_PURCHASER_EMAIL, zlog.Logger)

	if err := svc.ConsumeReportCredit(c.Request.Context(), userID); err != nil {
		if errors.Is(err, entitlement.ErrNoCredits) {
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "No report credits remaining"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to consume report credit"})
		return
	}

	report := reports.Report{
		UserID:     userID,
		Title:      input.Title,
		DamageType: input.DamageType,
		ClientName: input.ClientName,
		Status:     "draft",
	}
	if err := database.DB.Create(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func ListReports(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var rows []reports.Report
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reports"})
		return
	}

	c.JSON(http.StatusOK, rows)
}
