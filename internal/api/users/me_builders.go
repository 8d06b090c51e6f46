package users

import (
	"time"

	"restoration-app/internal/domain/entitlement"
	"restoration-app/internal/domain/users"
)

func BuildMeResponse(now time.Time, u users.User) MeResponse {
	tel := &u.Tel
	if u.Tel == "" {
		tel = nil
	}

	return MeResponse{
		User: UserDTO{
			ID:          u.ID,
			Email:       u.Email,
			Name:        u.Name,
			Lastname:    u.Lastname,
			CompanyName: u.CompanyName,
			Tel:         tel,
			Role:        u.Role,
		},
		Billing: BillingDTO{
			Status:               u.SubscriptionStatus,
			Plan:                 u.SubscriptionPlan,
			StripeCustomerID:     u.StripeCustomerID,
			StripeSubscriptionID: u.SubscriptionId,
			LastBillingDate:      u.LastBillingDate,
			NextBillingDate:      u.NextBillingDate,
			SubscriptionEndsAt:   u.SubscriptionEndsAt,
			LifetimeAccess:       u.LifetimeAccess,
		},
		Entitlement: entitlement.BuildSnapshot(now, u),
	}
}
