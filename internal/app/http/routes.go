package routes

import (
	adminapi "restoration-app/internal/api/admin"
	authapi "restoration-app/internal/api/auth"
	"restoration-app/internal/api/billing"
	"restoration-app/internal/api/plans"
	reportsapi "restoration-app/internal/api/reports"
	stripewebhooks "restoration-app/internal/api/stripewebhook"
	"restoration-app/internal/api/users"
	"restoration-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.POST("/webhook", stripewebhooks.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.GET("/plans", plans.ListPlans)
	public.GET("/addons", plans.ListAddons)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", users.GetCurrentUser)
	auth.POST("/change-password", authapi.ChangePassword)

	auth.GET("/billing/subscription", billing.SyncSubscription)
	auth.GET("/billing/purchases", billing.GetPurchaseHistory)
	auth.POST("/billing/checkout/subscription", billing.CreateSubscriptionCheckout)
	auth.POST("/billing/checkout/addon", billing.CreateAddonCheckout)
	auth.POST("/billing/verify-session", billing.VerifyAddonSession)
	auth.POST("/billing/reconcile-addons", billing.ReconcilePendingAddons)
	auth.POST("/billing/portal", billing.CreateBillingPortal)

	auth.GET("/reports", reportsapi.ListReports)

	// Report creation is gated on remaining credits
	gated := auth.Group("/")
	gated.Use(middleware.RequireReportCapacity())
	gated.POST("/reports", reportsapi.CreateReport)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminapi.AdminDashboard)
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/purchases", adminapi.ListAllPurchases)
	admin.POST("/users/:id/lifetime", adminapi.GrantLifetimeAccess)
	admin.POST("/sync-plans", plans.SyncPlansFromStripe)
}
