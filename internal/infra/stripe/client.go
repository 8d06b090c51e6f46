package stripe

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"restoration-app/internal/domain/entitlement"

	stripego "github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"github.com/stripe/stripe-go/v75/customer"
	"github.com/stripe/stripe-go/v75/subscription"
)

// Client is the production StripeAPI implementation on top of the stripe-go
// package-level bindings. The API key is set globally in main.
type Client struct{}

func (Client) GetCheckoutSession(ctx context.Context, id string) (*stripego.CheckoutSession, error) {
	params := &stripego.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := checkoutsession.Get(id, params)
	if err != nil {
		return nil, mapStripeErr(err, fmt.Sprintf("checkout session %s", id))
	}
	return sess, nil
}

func (Client) ListCheckoutSessions(ctx context.Context, customerID string, limit int64) ([]*stripego.CheckoutSession, error) {
	params := &stripego.CheckoutSessionListParams{
		Customer: stripego.String(customerID),
	}
	params.Context = ctx
	params.Limit = stripego.Int64(limit)

	it := checkoutsession.List(params)
	var out []*stripego.CheckoutSession
	for it.Next() {
		out = append(out, it.CheckoutSession())
	}
	if err := it.Err(); err != nil {
		return nil, mapStripeErr(err, "checkout session list")
	}
	return out, nil
}

func (Client) ListSubscriptions(ctx context.Context, customerID string, limit int64) ([]*stripego.Subscription, error) {
	params := &stripego.SubscriptionListParams{
		Customer: stripego.String(customerID),
		Status:   stripego.String("all"),
	}
	params.Context = ctx
	params.Limit = stripego.Int64(limit)

	it := subscription.List(params)
	var out []*stripego.Subscription
	for it.Next() {
		out = append(out, it.Subscription())
	}
	if err := it.Err(); err != nil {
		return nil, mapStripeErr(err, "subscription list")
	}
	return out, nil
}

func (Client) FindCustomerByEmail(ctx context.Context, email string) (string, error) {
	params := &stripego.CustomerListParams{
		Email: stripego.String(email),
	}
	params.Context = ctx
	params.Limit = stripego.Int64(1)

	it := customer.List(params)
	for it.Next() {
		return it.Customer().ID, nil
	}
	if err := it.Err(); err != nil {
		return "", mapStripeErr(err, "customer lookup")
	}
	return "", nil
}

// CreateCustomer is used by checkout creation only; the sync path never
// creates customers, it binds lazily by email.
func (Client) CreateCustomer(ctx context.Context, email, name string, metadata map[string]string) (string, error) {
	params := &stripego.CustomerParams{
		Email:    stripego.String(email),
		Metadata: metadata,
	}
	params.Context = ctx
	if name != "" {
		params.Name = stripego.String(name)
	}

	cus, err := customer.New(params)
	if err != nil {
		return "", mapStripeErr(err, "customer create")
	}
	return cus.ID, nil
}

// mapStripeErr normalizes SDK errors so the entitlement core can distinguish
// "resource is gone" from "Stripe is down".
func mapStripeErr(err error, what string) error {
	var stripeErr *stripego.Error
	if errors.As(err, &stripeErr) {
		if stripeErr.HTTPStatusCode == http.StatusNotFound || stripeErr.Code == stripego.ErrorCodeResourceMissing {
			return fmt.Errorf("%w: %s", entitlement.ErrNotFound, what)
		}
	}
	return fmt.Errorf("%s: %w", what, err)
}
