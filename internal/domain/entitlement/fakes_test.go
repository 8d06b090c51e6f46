package entitlement

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"restoration-app/internal/domain/billing"
	"restoration-app/internal/domain/users"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v75"
)

type fakeAccounts struct {
	mu    sync.Mutex
	users map[uint]*users.User
}

func newFakeAccounts(us ...*users.User) *fakeAccounts {
	f := &fakeAccounts{users: make(map[uint]*users.User)}
	for _, u := range us {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeAccounts) Get(_ context.Context, id uint) (*users.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeAccounts) SetStripeCustomerID(_ context.Context, id uint, customerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return ErrNotFound
	}
	u.StripeCustomerID = &customerID
	return nil
}

func (f *fakeAccounts) GrantAddonCredits(_ context.Context, id uint, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return ErrNotFound
	}
	u.AddonReportCredits += qty
	return nil
}

func (f *fakeAccounts) ApplySubscription(_ context.Context, id uint, up SubscriptionUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return ErrNotFound
	}
	u.SubscriptionStatus = up.Status
	plan := up.Plan
	u.SubscriptionPlan = &plan
	if up.StripeCustomerID != "" {
		cus := up.StripeCustomerID
		u.StripeCustomerID = &cus
	}
	sub := up.StripeSubscriptionID
	u.SubscriptionId = &sub
	start := up.PeriodStart
	end := up.PeriodEnd
	reset := up.MonthlyResetDate
	u.LastBillingDate = &start
	u.SubscriptionEndsAt = &end
	u.NextBillingDate = &end
	u.MonthlyReportsUsed = 0
	u.MonthlyResetDate = &reset
	if up.BonusCredits > 0 {
		u.AddonReportCredits += up.BonusCredits
	}
	if up.MarkBonusApplied {
		u.SignupBonusApplied = true
	}
	return nil
}

func (f *fakeAccounts) GrantLifetimeAccess(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return ErrNotFound
	}
	u.LifetimeAccess = true
	u.SubscriptionStatus = StatusActive
	plan := "Lifetime"
	u.SubscriptionPlan = &plan
	return nil
}

func (f *fakeAccounts) SetSubscriptionEnded(_ context.Context, id uint, status string, periodEnd time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return ErrNotFound
	}
	u.SubscriptionStatus = status
	end := periodEnd
	u.SubscriptionEndsAt = &end
	return nil
}

func (f *fakeAccounts) ApplyConsumption(_ context.Context, id uint, kind ConsumptionKind, nextReset *time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return ErrNotFound
	}
	switch kind {
	case ConsumeMonthly:
		u.MonthlyReportsUsed++
	case ConsumeMonthlyRollover:
		u.MonthlyReportsUsed = 1
		u.MonthlyResetDate = nextReset
	case ConsumeTrial:
		u.CreditsRemaining--
		u.TotalCreditsUsed++
	case ConsumeAddon:
		u.AddonReportCredits--
	}
	return nil
}

type fakeLedger struct {
	mu        sync.Mutex
	available bool
	rows      map[string]billing.AddonPurchase
	insertErr error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{available: true, rows: make(map[string]billing.AddonPurchase)}
}

func (f *fakeLedger) Available() bool { return f.available }

func (f *fakeLedger) Insert(_ context.Context, p *billing.AddonPurchase) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	if _, dup := f.rows[p.StripeSessionID]; dup {
		return ErrAlreadyProcessed
	}
	f.rows[p.StripeSessionID] = *p
	return nil
}

func (f *fakeLedger) ListByUser(_ context.Context, userID uint) ([]billing.AddonPurchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []billing.AddonPurchase
	for _, p := range f.rows {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeLedger) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

type fakeStripe struct {
	mu               sync.Mutex
	sessions         map[string]*stripe.CheckoutSession
	sessionErrs      map[string]error
	listSessions     []*stripe.CheckoutSession
	listSessionsErr  error
	subs             []*stripe.Subscription
	listSubsErr      error
	customersByEmail map[string]string
	customerErr      error

	subListCalls     int
	sessionListCalls int
}

func newFakeStripe() *fakeStripe {
	return &fakeStripe{
		sessions:         make(map[string]*stripe.CheckoutSession),
		sessionErrs:      make(map[string]error),
		customersByEmail: make(map[string]string),
	}
}

func (f *fakeStripe) GetCheckoutSession(_ context.Context, id string) (*stripe.CheckoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.sessionErrs[id]; ok {
		return nil, err
	}
	sess, ok := f.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: checkout session %s", ErrNotFound, id)
	}
	return sess, nil
}

func (f *fakeStripe) ListCheckoutSessions(_ context.Context, customerID string, limit int64) ([]*stripe.CheckoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessionListCalls++
	if f.listSessionsErr != nil {
		return nil, f.listSessionsErr
	}
	if int64(len(f.listSessions)) > limit {
		return f.listSessions[:limit], nil
	}
	return f.listSessions, nil
}

func (f *fakeStripe) ListSubscriptions(_ context.Context, customerID string, limit int64) ([]*stripe.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subListCalls++
	if f.listSubsErr != nil {
		return nil, f.listSubsErr
	}
	return f.subs, nil
}

func (f *fakeStripe) FindCustomerByEmail(_ context.Context, email string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.customerErr != nil {
		return "", f.customerErr
	}
	return f.customersByEmail[email], nil
}

const testLifetimeEmail = "lifetime@example.com"

func newTestService(acc *fakeAccounts, led *fakeLedger, api *fakeStripe) *Service {
	return NewService(acc, led, api, testLifetimeEmail, zerolog.Nop())
}

func addonSession(id string, userID uint, key string, qty int, created time.Time) *stripe.CheckoutSession {
	md := map[string]string{
		"type":         "addon",
		"userId":       fmt.Sprint(userID),
		"addonName":    "Report Pack",
		"addonReports": strconv.Itoa(qty),
	}
	if key != "" {
		md["addonKey"] = key
	}
	return &stripe.CheckoutSession{
		ID:            id,
		Mode:          stripe.CheckoutSessionModePayment,
		PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid,
		Created:       created.Unix(),
		AmountTotal:   3900,
		Currency:      stripe.CurrencyEUR,
		Metadata:      md,
	}
}

func activeSubscription(id string, created time.Time, interval stripe.PriceRecurringInterval) *stripe.Subscription {
	return &stripe.Subscription{
		ID:                 id,
		Status:             stripe.SubscriptionStatusActive,
		Created:            created.Unix(),
		CurrentPeriodStart: created.Unix(),
		CurrentPeriodEnd:   created.AddDate(0, 1, 0).Unix(),
		Items: &stripe.SubscriptionItemList{
			Data: []*stripe.SubscriptionItem{
				{Price: &stripe.Price{Recurring: &stripe.PriceRecurring{Interval: interval}}},
			},
		},
	}
}

func trialUser(id uint, email string) *users.User {
	return &users.User{
		ID:                 id,
		Email:              email,
		SubscriptionStatus: StatusTrial,
		CreditsRemaining:   TrialCredits,
	}
}
