package entitlement

import "errors"

var (
	// ErrUnauthorized: the checkout session does not belong to the calling
	// account. Never silently reassigned.
	ErrUnauthorized = errors.New("session does not belong to this account")

	// ErrNotFound covers missing users, missing Stripe customers, missing
	// sessions and "no active subscription".
	ErrNotFound = errors.New("not found")

	// ErrAlreadyProcessed is a success-with-no-op: the purchase was applied
	// earlier (idempotency row exists) or is outside the degraded-mode window.
	ErrAlreadyProcessed = errors.New("session already processed")

	// ErrNotAddon: the session is real but not an addon purchase.
	ErrNotAddon = errors.New("not an addon purchase session")

	// ErrPaymentIncomplete: session exists but was never paid.
	ErrPaymentIncomplete = errors.New("payment not completed")

	// ErrMalformedPurchase: missing addon key or non-positive quantity in the
	// session metadata. Skipped in sweeps, surfaced on targeted verification.
	ErrMalformedPurchase = errors.New("invalid addon purchase data")

	// ErrExternalService: Stripe unreachable or rejecting calls.
	ErrExternalService = errors.New("payment provider error")

	// ErrNoCredits: every pool is exhausted for this account.
	ErrNoCredits = errors.New("no report credits remaining")
)
