package stripewebhooks

import (
	"errors"
	"fmt"
	"strconv"

	"restoration-app/internal/domain/entitlement"

	"github.com/gin-gonic/gin"
	zlog "github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v75"
)

// handleCheckoutSessionCompleted routes a finished checkout to the matching
// entitlement path: addon payments go through the reconciler (idempotent, so
// a webhook retry racing a success-page verification is harmless), everything
// else triggers a subscription sync.
func handleCheckoutSessionCompleted(c *gin.Context, session *stripe.CheckoutSession) error {
	userID := userIDFromSession(session)
	if userID == 0 {
		// Acknowledge: a session we cannot attribute will never become
		// attributable on retry.
		zlog.Warn().Str("session", session.ID).Msg("checkout completed without user reference")
		return nil
	}

	ctx := c.Request.Context()

	if session.Metadata["type"] == "addon" {
		_, err := svc().VerifyAddonSession(ctx, userID, session.ID)
		switch {
		case err == nil, errors.Is(err, entitlement.ErrAlreadyProcessed):
			return nil
		case errors.Is(err, entitlement.ErrPaymentIncomplete), errors.Is(err, entitlement.ErrMalformedPurchase):
			// Not retryable; acknowledge.
			zlog.Warn().Err(err).Str("session", session.ID).Msg("addon session not applied")
			return nil
		default:
			return fmt.Errorf("apply addon session: %w", err)
		}
	}

	_, err := svc().SyncSubscriptionState(ctx, userID)
	if err != nil && !errors.Is(err, entitlement.ErrNotFound) {
		return fmt.Errorf("sync after checkout: %w", err)
	}
	return nil
}

// userIDFromSession prefers metadata.userId, falling back to the client
// reference id set at checkout creation.
func userIDFromSession(session *stripe.CheckoutSession) uint {
	s := ""
	if session.Metadata != nil {
		s = session.Metadata["userId"]
	}
	if s == "" {
		s = session.ClientReferenceID
	}
	if s == "" {
		return 0
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}
