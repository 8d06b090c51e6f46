package entitlement

import (
	"context"
	"fmt"
	"strings"
	"time"

	"restoration-app/internal/domain/users"

	"github.com/rs/zerolog"
)

// Service holds the reconciliation and sync logic between Stripe and the
// entitlement state on the user row.
type Service struct {
	accounts      AccountStore
	purchases     PurchaseLedger
	stripe        StripeAPI
	lifetimeEmail string
	log           zerolog.Logger

	now func() time.Time
}

func NewService(accounts AccountStore, purchases PurchaseLedger, api StripeAPI, lifetimeEmail string, log zerolog.Logger) *Service {
	return &Service{
		accounts:      accounts,
		purchases:     purchases,
		stripe:        api,
		lifetimeEmail: lifetimeEmail,
		log:           log,
		now:           time.Now,
	}
}

// ensureCustomerRef resolves the account's Stripe customer id, looking it up
// by email and persisting it at most once when missing. It never creates a
// customer; that happens at checkout.
func (s *Service) ensureCustomerRef(ctx context.Context, user *users.User) (string, error) {
	if user.StripeCustomerID != nil && *user.StripeCustomerID != "" {
		return *user.StripeCustomerID, nil
	}

	id, err := s.stripe.FindCustomerByEmail(ctx, user.Email)
	if err != nil {
		return "", fmt.Errorf("%w: customer lookup: %v", ErrExternalService, err)
	}
	if id == "" {
		return "", fmt.Errorf("%w: no billing account for %s", ErrNotFound, user.Email)
	}

	if err := s.accounts.SetStripeCustomerID(ctx, user.ID, id); err != nil {
		return "", err
	}
	user.StripeCustomerID = &id
	return id, nil
}

func (s *Service) isLifetimePurchaser(email string) bool {
	return s.lifetimeEmail != "" && strings.EqualFold(email, s.lifetimeEmail)
}
