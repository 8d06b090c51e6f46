package billing

import (
	"fmt"
	"net/http"
	"strconv"

	"restoration-app/config"
	"restoration-app/database"
	"restoration-app/internal/domain/plans"
	"restoration-app/internal/domain/users"
	stripeinfra "restoration-app/internal/infra/stripe"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	portalSession "github.com/stripe/stripe-go/v75/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
)

// ensureStripeCustomer creates the Stripe customer lazily, at most once per
// account, and persists the reference.
func ensureStripeCustomer(c *gin.Context, user *users.User) error {
	if user.StripeCustomerID != nil && *user.StripeCustomerID != "" {
		return nil
	}

	id, err := stripeinfra.Client{}.CreateCustomer(c.Request.Context(), user.Email, user.Name+" "+user.Lastname, map[string]string{
		"userId": fmt.Sprint(user.ID),
	})
	if err != nil {
		return err
	}

	if err := database.DB.Model(&users.User{}).
		Where("id = ?", user.ID).
		Update("stripe_customer_id", id).Error; err != nil {
		return err
	}

	user.StripeCustomerID = &id
	return nil
}

// CreateSubscriptionCheckout starts a subscription checkout for an allow-listed
// price.
func CreateSubscriptionCheckout(c *gin.Context) {
	var body struct {
		PriceID string `json:"price_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.PriceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid price_id"})
		return
	}

	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	// allow-list price id
	var plan plans.Plan
	if err := database.DB.Where("stripe_price_id = ?", body.PriceID).First(&plan).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown plan/price_id"})
		return
	}

	var user users.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	if err := ensureStripeCustomer(c, &user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Stripe customer"})
		return
	}

	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(config.APP_URL + "/account"),
		CancelURL:  stripe.String(config.APP_URL + "/account?canceled=1"),
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer:   stripe.String(*user.StripeCustomerID),

		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(plan.StripePriceID), Quantity: stripe.Int64(1)},
		},

		ClientReferenceID: stripe.String(fmt.Sprint(user.ID)),

		Metadata: map[string]string{
			"type":   "subscription",
			"userId": fmt.Sprint(user.ID),
		},

		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{
				"userId": fmt.Sprint(user.ID),
			},
		},
	}
	params.Context = c.Request.Context()

	s, err := checkoutsession.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": s.URL})
}

// CreateAddonCheckout starts a one-time payment checkout for a report pack.
// The metadata written here is exactly what the reconciler reads back later.
func CreateAddonCheckout(c *gin.Context) {
	var body struct {
		AddonKey string `json:"addon_key"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.AddonKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid addon_key"})
		return
	}

	addon, ok := plans.AddonByKey(body.AddonKey)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown addon"})
		return
	}

	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var user users.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	if err := ensureStripeCustomer(c, &user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Stripe customer"})
		return
	}

	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(config.APP_URL + "/account/billing?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(config.APP_URL + "/account/billing?canceled=1"),
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		Customer:   stripe.String(*user.StripeCustomerID),

		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String("eur"),
					UnitAmount: stripe.Int64(int64(addon.PriceEUR * 100)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(addon.Name),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},

		ClientReferenceID: stripe.String(fmt.Sprint(user.ID)),

		Metadata: map[string]string{
			"type":         "addon",
			"userId":       fmt.Sprint(user.ID),
			"addonKey":     addon.Key,
			"addonName":    addon.Name,
			"addonReports": strconv.Itoa(addon.ReportCredits),
		},
	}
	params.Context = c.Request.Context()

	s, err := checkoutsession.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": s.URL})
}

func CreateBillingPortal(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var user users.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}
	if user.StripeCustomerID == nil || *user.StripeCustomerID == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "No Stripe customer yet (subscribe first)"})
		return
	}

	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(*user.StripeCustomerID),
		ReturnURL: stripe.String(config.APP_URL + "/account"),
	}
	params.Context = c.Request.Context()

	portal, err := portalSession.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create billing portal session", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": portal.URL})
}
