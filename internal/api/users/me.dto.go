package users

import (
	"time"

	"restoration-app/internal/domain/entitlement"
)

type MeResponse struct {
	User        UserDTO              `json:"user"`
	Billing     BillingDTO           `json:"billing"`
	Entitlement entitlement.Snapshot `json:"entitlement"`
}

/* ---------- USER ---------- */

type UserDTO struct {
	ID          uint    `json:"id"`
	Email       string  `json:"email"`
	Name        string  `json:"name"`
	Lastname    string  `json:"lastname"`
	CompanyName string  `json:"company_name"`
	Tel         *string `json:"tel"`
	Role        string  `json:"role"`
}

/* ---------- BILLING ---------- */

type BillingDTO struct {
	Status               string     `json:"status"`
	Plan                 *string    `json:"plan"`
	StripeCustomerID     *string    `json:"stripe_customer_id"`
	StripeSubscriptionID *string    `json:"stripe_subscription_id"`
	LastBillingDate      *time.Time `json:"last_billing_date"`
	NextBillingDate      *time.Time `json:"next_billing_date"`
	SubscriptionEndsAt   *time.Time `json:"subscription_ends_at"`
	LifetimeAccess       bool       `json:"lifetime_access"`
}
