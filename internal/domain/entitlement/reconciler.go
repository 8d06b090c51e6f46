package entitlement

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"restoration-app/internal/domain/billing"

	"github.com/stripe/stripe-go/v75"
)

// VerifyAddonSession is the targeted verification path: the client lands on
// the checkout success page and asks us to confirm one specific session. The
// caller is waiting synchronously, so external failures are surfaced instead
// of swallowed.
func (s *Service) VerifyAddonSession(ctx context.Context, accountID uint, sessionID string) (*VerifyResult, error) {
	user, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	sess, err := s.stripe.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: retrieve session: %v", ErrExternalService, err)
	}

	if sess.Metadata[metaUserID] != fmt.Sprint(accountID) {
		return nil, ErrUnauthorized
	}
	if sess.Metadata[metaType] != sessionTypeAddon || sess.Mode != stripe.CheckoutSessionModePayment {
		return nil, ErrNotAddon
	}
	if sess.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		return nil, ErrPaymentIncomplete
	}

	granted, err := s.applyAddonSession(ctx, user.ID, sess, map[string]bool{})
	if err != nil {
		return nil, err
	}

	fresh, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Uint("user_id", user.ID).
		Str("session", sess.ID).
		Int("credits", granted).
		Msg("addon session verified")

	return &VerifyResult{CreditsGranted: granted, AddonCredits: fresh.AddonReportCredits}, nil
}

// ReconcilePendingAddons sweeps the account's recent checkout sessions and
// applies every paid addon purchase that has no ledger row yet. One bad
// session never aborts the batch.
func (s *Service) ReconcilePendingAddons(ctx context.Context, accountID uint) (*ReconcileResult, error) {
	user, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	previous := user.AddonReportCredits

	customerID := ""
	if user.StripeCustomerID != nil {
		customerID = *user.StripeCustomerID
	}
	if customerID == "" {
		id, err := s.stripe.FindCustomerByEmail(ctx, user.Email)
		if err != nil {
			return nil, fmt.Errorf("%w: customer lookup: %v", ErrExternalService, err)
		}
		if id == "" {
			// No billing account yet means nothing to reconcile.
			return &ReconcileResult{Processed: 0, AddonCredits: previous, PreviousAddonCredits: previous}, nil
		}
		if err := s.accounts.SetStripeCustomerID(ctx, user.ID, id); err != nil {
			return nil, err
		}
		customerID = id
	}

	sessions, err := s.stripe.ListCheckoutSessions(ctx, customerID, sweepLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: list sessions: %v", ErrExternalService, err)
	}

	seen := make(map[string]bool)
	processed := 0
	for _, summary := range sessions {
		if summary == nil || summary.Metadata[metaType] != sessionTypeAddon {
			continue
		}
		if summary.Metadata[metaUserID] != fmt.Sprint(accountID) {
			continue
		}

		// Re-fetch for authoritative payment status; listing can lag.
		sess, err := s.stripe.GetCheckoutSession(ctx, summary.ID)
		if err != nil {
			s.log.Warn().Err(err).Str("session", summary.ID).Msg("skipping session, retrieval failed")
			continue
		}
		if sess.Mode != stripe.CheckoutSessionModePayment || sess.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
			continue
		}

		granted, err := s.applyAddonSession(ctx, user.ID, sess, seen)
		switch {
		case errors.Is(err, ErrAlreadyProcessed), errors.Is(err, ErrMalformedPurchase):
			continue
		case err != nil:
			s.log.Error().Err(err).Str("session", sess.ID).Msg("failed to apply addon session")
			continue
		}

		processed++
		s.log.Info().
			Uint("user_id", user.ID).
			Str("session", sess.ID).
			Int("credits", granted).
			Msg("applied pending addon purchase")
	}

	fresh, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &ReconcileResult{
		Processed:            processed,
		AddonCredits:         fresh.AddonReportCredits,
		PreviousAddonCredits: previous,
	}, nil
}

// applyAddonSession turns one paid addon checkout session into at most one
// credit grant. The ledger row is inserted BEFORE the increment: if the
// insert loses a race the duplicate is reported as already processed and no
// credits move. Worst case under a crash is a row without its increment,
// never a double grant.
func (s *Service) applyAddonSession(ctx context.Context, userID uint, sess *stripe.CheckoutSession, seen map[string]bool) (int, error) {
	key := sess.Metadata[metaAddonKey]
	qty, convErr := strconv.Atoi(sess.Metadata[metaAddonReports])
	if key == "" || convErr != nil || qty <= 0 {
		return 0, ErrMalformedPurchase
	}

	if seen[sess.ID] {
		return 0, ErrAlreadyProcessed
	}

	if s.purchases.Available() {
		row := &billing.AddonPurchase{
			UserID:          userID,
			StripeSessionID: sess.ID,
			AddonKey:        key,
			AddonName:       sess.Metadata[metaAddonName],
			ReportCredits:   qty,
			AmountTotal:     sess.AmountTotal,
			Currency:        string(sess.Currency),
			Status:          billing.StatusCompleted,
		}
		if err := s.purchases.Insert(ctx, row); err != nil {
			if errors.Is(err, ErrAlreadyProcessed) {
				return 0, ErrAlreadyProcessed
			}
			return 0, fmt.Errorf("recording addon purchase: %w", err)
		}
	} else {
		// Degraded mode: the ledger table never migrated. Only sessions
		// created inside the window are applied; duplicate protection drops
		// to best effort and concurrent duplicates can double-credit.
		created := time.Unix(sess.Created, 0)
		if s.now().Sub(created) > degradedWindow {
			return 0, ErrAlreadyProcessed
		}
		s.log.Warn().
			Str("session", sess.ID).
			Uint("user_id", userID).
			Msg("addon ledger unavailable, applying with time-window heuristic only")
	}

	if err := s.accounts.GrantAddonCredits(ctx, userID, qty); err != nil {
		return 0, fmt.Errorf("granting addon credits: %w", err)
	}
	seen[sess.ID] = true
	return qty, nil
}
