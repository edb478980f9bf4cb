package routes

import (
	"github.com/gin-gonic/gin"

	billingapi "wyckoffpro-backend/internal/api/billing"
	"wyckoffpro-backend/internal/api/notify"
	stripewebhooks "wyckoffpro-backend/internal/api/stripewebhook"
	"wyckoffpro-backend/internal/api/support"
	usersapi "wyckoffpro-backend/internal/api/users"
	"wyckoffpro-backend/internal/app/http/middleware"
)

// Deps carries every handler and middleware the router mounts. Constructed
// once in main; nothing here reads globals.
type Deps struct {
	Identity *middleware.IdentityResolver
	Billing  *billingapi.Handler
	Support  *support.Handler
	Notify   *notify.Handler
	Users    *usersapi.Handler
	Webhook  *stripewebhooks.Handler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	billingapi.RegisterValidators()

	// The webhook must see the raw body for signature verification, so it
	// stays outside the sanitizing group.
	r.POST("/api/webhooks/stripe", d.Webhook.Handle)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middleware.SanitizeInput())

	api.GET("/plans", d.Billing.Plans)
	api.GET("/stripe/config", d.Billing.CheckoutConfig)

	// Soft auth: the subscription view fails open toward "new user".
	soft := api.Group("/")
	soft.Use(d.Identity.Optional())
	soft.GET("/stripe/subscription", d.Billing.Subscription)

	auth := api.Group("/")
	auth.Use(d.Identity.Require())
	auth.GET("/me", d.Users.Me)
	auth.POST("/stripe/create-checkout-session", d.Billing.CreateCheckoutSession)
	auth.POST("/stripe/portal", d.Billing.CreatePortal)
	auth.POST("/freshdesk/create-ticket", d.Support.CreateTicket)
	auth.GET("/freshdesk/tickets", d.Support.ListTickets)
	auth.POST("/notify-tradingview", d.Notify.TradingViewUsername)
}
