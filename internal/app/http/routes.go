package routes

import (
	adminapi "community-portal/internal/api/admin"
	authapi "community-portal/internal/api/auth"
	"community-portal/internal/api/billing"
	eventsapi "community-portal/internal/api/events"
	profilesapi "community-portal/internal/api/profiles"
	stripewebhooks "community-portal/internal/api/stripewebhook"
	"community-portal/internal/app/http/middleware"
	"community-portal/internal/metrics"

	"community-portal/config"

	"github.com/gin-gonic/gin"
)

// Deps carries the wired handlers; construction happens in main.
type Deps struct {
	Auth     *authapi.Handler
	Profiles *profilesapi.Handler
	Admin    *adminapi.Handler
	Checkout *billing.Handler
	Billing  *billing.SubscriptionHandler
	Events   *eventsapi.Handler
	Webhook  *stripewebhooks.Handler

	ProfileStore middleware.ProfileGetter
	Metrics      *metrics.Collector
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.POST("/webhook", d.Webhook.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", d.Metrics.Handler())

	// Public routes get input sanitization plus a per-IP rate limit on the
	// credential endpoints.
	authLimiter := middleware.NewIPRateLimiter(30, 10)

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authLimiter.Middleware(), d.Auth.Register)
	public.POST("/login", authLimiter.Middleware(), d.Auth.Login)
	public.GET("/catalog", d.Billing.ListCatalog)

	if config.GoogleEnabled() {
		public.GET("/auth/google", d.Auth.GoogleStart)
		public.GET("/auth/google/callback", d.Auth.GoogleCallback)
	}

	// Authenticated: session required, approval not. Pending members can see
	// their own state, edit their profile, and buy catalog items.
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.POST("/signout", d.Auth.SignOut)
	auth.GET("/me", d.Profiles.Me)
	auth.PUT("/profile", middleware.SanitizeAndCleanInputMiddleware(), d.Profiles.UpdateProfile)
	auth.GET("/subscription", d.Billing.GetSubscription)
	auth.GET("/orders", d.Billing.GetOrderHistory)
	auth.POST("/create-checkout-session", d.Checkout.CreateCheckoutSession)

	// Approved members only; the gate re-reads the profile on every request.
	member := auth.Group("/")
	member.Use(middleware.RequireApproved(d.ProfileStore))
	member.GET("/events", d.Events.ListEvents)
	member.POST("/events", d.Events.CreateEvent)
	member.GET("/suggestions", d.Events.ListSuggestions)
	member.POST("/suggestions", d.Events.CreateSuggestion)
	member.DELETE("/suggestions/:id", d.Events.DeleteSuggestion)

	// Admin routes: the admission controller re-derives the actor's admin
	// flag from the profile store on every call.
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.GET("/users/pending", d.Admin.ListPending)
	admin.GET("/users", d.Admin.ListAll)
	admin.POST("/users/:id/approve", d.Admin.Approve)
	admin.DELETE("/users/:id", d.Admin.Reject)
	admin.PUT("/users/:id/admin", d.Admin.SetAdmin)
}
