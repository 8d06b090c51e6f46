package store

import (
	"context"
	"errors"
	"time"

	"restoration-app/internal/domain/billing"
	"restoration-app/internal/domain/entitlement"
	"restoration-app/internal/domain/users"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Gorm implements both the AccountStore and PurchaseLedger contracts on top
// of the shared GORM handle.
type Gorm struct {
	db          *gorm.DB
	addonLedger bool
}

func NewGorm(db *gorm.DB, addonLedgerAvailable bool) *Gorm {
	return &Gorm{db: db, addonLedger: addonLedgerAvailable}
}

func (g *Gorm) Get(ctx context.Context, id uint) (*users.User, error) {
	var u users.User
	if err := g.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entitlement.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (g *Gorm) SetStripeCustomerID(ctx context.Context, id uint, customerID string) error {
	return g.db.WithContext(ctx).Model(&users.User{}).
		Where("id = ?", id).
		Update("stripe_customer_id", customerID).Error
}

func (g *Gorm) GrantAddonCredits(ctx context.Context, id uint, qty int) error {
	return g.db.WithContext(ctx).Model(&users.User{}).
		Where("id = ?", id).
		UpdateColumn("addon_report_credits", gorm.Expr("addon_report_credits + ?", qty)).Error
}

func (g *Gorm) ApplySubscription(ctx context.Context, id uint, up entitlement.SubscriptionUpdate) error {
	updates := map[string]interface{}{
		"subscription_status":  up.Status,
		"subscription_plan":    up.Plan,
		"stripe_customer_id":   up.StripeCustomerID,
		"subscription_id":      up.StripeSubscriptionID,
		"last_billing_date":    up.PeriodStart,
		"subscription_ends_at": up.PeriodEnd,
		"next_billing_date":    up.PeriodEnd,
		"monthly_reports_used": 0,
		"monthly_reset_date":   up.MonthlyResetDate,
	}
	if up.BonusCredits > 0 {
		updates["addon_report_credits"] = gorm.Expr("addon_report_credits + ?", up.BonusCredits)
	}
	if up.MarkBonusApplied {
		updates["signup_bonus_applied"] = true
	}

	return g.db.WithContext(ctx).Model(&users.User{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (g *Gorm) GrantLifetimeAccess(ctx context.Context, id uint) error {
	return g.db.WithContext(ctx).Model(&users.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"lifetime_access":     true,
			"subscription_status": entitlement.StatusActive,
			"subscription_plan":   "Lifetime",
		}).Error
}

func (g *Gorm) SetSubscriptionEnded(ctx context.Context, id uint, status string, periodEnd time.Time) error {
	return g.db.WithContext(ctx).Model(&users.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"subscription_status":  status,
			"subscription_ends_at": periodEnd,
		}).Error
}

func (g *Gorm) ApplyConsumption(ctx context.Context, id uint, kind entitlement.ConsumptionKind, nextReset *time.Time) error {
	q := g.db.WithContext(ctx).Model(&users.User{}).Where("id = ?", id)

	switch kind {
	case entitlement.ConsumeUnlimited:
		return nil
	case entitlement.ConsumeMonthly:
		return q.UpdateColumn("monthly_reports_used", gorm.Expr("monthly_reports_used + 1")).Error
	case entitlement.ConsumeMonthlyRollover:
		return q.UpdateColumns(map[string]interface{}{
			"monthly_reports_used": 1,
			"monthly_reset_date":   nextReset,
		}).Error
	case entitlement.ConsumeTrial:
		return q.UpdateColumns(map[string]interface{}{
			"credits_remaining":  gorm.Expr("credits_remaining - 1"),
			"total_credits_used": gorm.Expr("total_credits_used + 1"),
		}).Error
	case entitlement.ConsumeAddon:
		return q.UpdateColumn("addon_report_credits", gorm.Expr("addon_report_credits - 1")).Error
	}
	return nil
}

func (g *Gorm) Available() bool {
	return g.addonLedger
}

// Insert writes the idempotency row. A unique violation on the session id is
// reported as ErrAlreadyProcessed so the reconciler can treat it as a no-op.
func (g *Gorm) Insert(ctx context.Context, p *billing.AddonPurchase) error {
	err := g.db.WithContext(ctx).Create(p).Error
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return entitlement.ErrAlreadyProcessed
	}
	return err
}

func (g *Gorm) ListByUser(ctx context.Context, userID uint) ([]billing.AddonPurchase, error) {
	var rows []billing.AddonPurchase
	err := g.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
