package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"wyckoffpro-backend/config"
	"wyckoffpro-backend/database"
	billingapi "wyckoffpro-backend/internal/api/billing"
	"wyckoffpro-backend/internal/api/notify"
	stripewebhooks "wyckoffpro-backend/internal/api/stripewebhook"
	"wyckoffpro-backend/internal/api/support"
	usersapi "wyckoffpro-backend/internal/api/users"
	routes "wyckoffpro-backend/internal/app/http"
	"wyckoffpro-backend/internal/app/http/middleware"
	"wyckoffpro-backend/internal/app/logger"
	"wyckoffpro-backend/internal/domain/events"
	"wyckoffpro-backend/internal/domain/subscription"
	"wyckoffpro-backend/internal/infra/billing"
	"wyckoffpro-backend/internal/infra/freshdesk"
	"wyckoffpro-backend/internal/infra/identity"
	"wyckoffpro-backend/internal/infra/mailer"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	cfg := config.Load()
	slogger := logger.New(cfg.LogFormat)

	// Every provider client is constructed once here and injected; handlers
	// hold references instead of reading globals.
	billingClient := billing.New(cfg.StripeSecretKey, cfg.AppURL)
	identityClient := identity.NewClient(cfg.IdentityAPIURL, cfg.IdentityAPIKey)
	helpdesk := freshdesk.NewClient(cfg.FreshdeskDomain, cfg.FreshdeskAPIKey)

	var sender mailer.Sender
	if cfg.PostmarkServerToken != "" {
		sender = mailer.NewPostmarkSender(cfg.PostmarkServerToken, cfg.PostmarkAccountToken, cfg.FromEmail)
	} else {
		sender = mailer.NewDevSender(slogger)
	}
	dispatcher := mailer.NewDispatcher(sender, slogger)

	var verifier identity.Verifier
	if cfg.IdentityIssuerURL != "" {
		v, err := identity.NewOIDCVerifier(context.Background(), cfg.IdentityIssuerURL, cfg.IdentityAudience)
		if err != nil {
			log.Fatalf("identity issuer discovery failed: %v", err)
		}
		verifier = v
	} else {
		verifier = identity.NewHS256Verifier(cfg.IdentityJWTSecret)
	}

	// Optional: without a database the webhook processor re-sends duplicate
	// cancellation notices instead of deduplicating them.
	var notices stripewebhooks.NoticeLedger
	if cfg.DatabaseURL != "" {
		db, err := database.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("database connection failed: %v", err)
		}
		notices = events.NewNoticeStore(db)
	}

	resolver := subscription.NewResolver(billingClient)
	identityResolver := middleware.NewIdentityResolver(verifier, identityClient, slogger)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{
		Identity: identityResolver,
		Billing:  billingapi.NewHandler(cfg, billingClient, resolver, slogger),
		Support:  support.NewHandler(helpdesk, slogger),
		Notify:   notify.NewHandler(identityClient, dispatcher, cfg.AdminEmail, slogger),
		Users:    usersapi.NewHandler(),
		Webhook:  stripewebhooks.NewHandler(cfg.StripeWebhookSecret, billingClient, dispatcher, notices, cfg.AdminEmail, cfg.AppURL, slogger),
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
