package entitlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restoration-app/internal/domain/plans"
	"restoration-app/internal/domain/users"

	"github.com/stripe/stripe-go/v75"
)

// SyncSubscriptionState pulls the account's current subscription from Stripe
// and folds it into the user row. Safe to call repeatedly: the only
// non-idempotent part, the signup bonus, is guarded by its own flag.
func (s *Service) SyncSubscriptionState(ctx context.Context, accountID uint) (*SubscriptionState, error) {
	user, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	// Lifetime short-circuit: no Stripe calls at all.
	if user.LifetimeAccess || (user.SubscriptionStatus == StatusActive && user.SubscriptionPlan != nil && *user.SubscriptionPlan == plans.PlanLifetime) {
		return lifetimeState(user), nil
	}

	customerID, err := s.ensureCustomerRef(ctx, user)
	if err != nil {
		return nil, err
	}

	subs, err := s.stripe.ListSubscriptions(ctx, customerID, sweepLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: list subscriptions: %v", ErrExternalService, err)
	}

	current := pickCurrentSubscription(subs)
	if current == nil {
		return s.lifetimeFallback(ctx, user, customerID)
	}

	plan := plans.LabelForInterval(subscriptionInterval(current))
	now := s.now()

	update := SubscriptionUpdate{
		Status:               StatusActive,
		Plan:                 plan,
		StripeCustomerID:     customerID,
		StripeSubscriptionID: current.ID,
		PeriodStart:          time.Unix(current.CurrentPeriodStart, 0),
		PeriodEnd:            time.Unix(current.CurrentPeriodEnd, 0),
		MonthlyResetDate:     NextMonthlyReset(now),
	}
	if firstActivation(user) {
		update.BonusCredits = SignupBonusCredits
		update.MarkBonusApplied = true
	}

	if err := s.accounts.ApplySubscription(ctx, user.ID, update); err != nil {
		return nil, err
	}

	if update.BonusCredits > 0 {
		s.log.Info().
			Uint("user_id", user.ID).
			Int("credits", update.BonusCredits).
			Msg("signup bonus granted on first activation")
	}

	fresh, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &SubscriptionState{
		Status:           StatusActive,
		Plan:             plan,
		CreditsRemaining: fresh.CreditsRemaining,
		AddonCredits:     fresh.AddonReportCredits,
	}, nil
}

// lifetimeFallback handles the single known account that bought one-time
// lifetime access instead of subscribing. The email match alone never grants
// anything: a paid type=lifetime session must exist among the customer's
// recent checkouts.
func (s *Service) lifetimeFallback(ctx context.Context, user *users.User, customerID string) (*SubscriptionState, error) {
	if !s.isLifetimePurchaser(user.Email) {
		return nil, fmt.Errorf("%w: no active subscription", ErrNotFound)
	}

	sessions, err := s.stripe.ListCheckoutSessions(ctx, customerID, sweepLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: list sessions: %v", ErrExternalService, err)
	}

	for _, sess := range sessions {
		if sess == nil || sess.Metadata[metaType] != sessionTypeLifetime {
			continue
		}
		if sess.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
			continue
		}

		if err := s.accounts.GrantLifetimeAccess(ctx, user.ID); err != nil {
			return nil, err
		}
		s.log.Info().
			Uint("user_id", user.ID).
			Str("session", sess.ID).
			Msg("lifetime access confirmed from one-time purchase")

		user.LifetimeAccess = true
		return lifetimeState(user), nil
	}

	return nil, fmt.Errorf("%w: no active subscription", ErrNotFound)
}

func lifetimeState(user *users.User) *SubscriptionState {
	return &SubscriptionState{
		Status:           StatusActive,
		Plan:             plans.PlanLifetime,
		CreditsRemaining: user.CreditsRemaining,
		AddonCredits:     user.AddonReportCredits,
		Unlimited:        true,
	}
}

// MarkSubscriptionEnded folds a cancellation or deletion event into the user
// row without touching any counter or credit pool. Lifetime accounts keep
// their override regardless.
func (s *Service) MarkSubscriptionEnded(ctx context.Context, accountID uint, status string, periodEnd time.Time) error {
	user, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	if user.LifetimeAccess {
		return nil
	}
	return s.accounts.SetSubscriptionEnded(ctx, user.ID, status, periodEnd)
}
