package config

import (
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config carries every recognized environment option. Absence of the Stripe
// secret key is tolerated (subscription reads degrade to a safe default);
// absence of other provider keys makes the corresponding adapter call fail at
// request time.
type Config struct {
	Port       string `env:"PORT" envDefault:"8080"`
	AppURL     string `env:"APP_URL" envDefault:"http://localhost:3000"`
	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"http://localhost:3000"`
	LogFormat  string `env:"LOG_FORMAT" envDefault:"text"`

	// Optional. When set, the webhook processor deduplicates
	// cancellation-scheduled emails per subscription id.
	DatabaseURL string `env:"DATABASE_URL"`

	StripeSecretKey      string `env:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret  string `env:"STRIPE_WEBHOOK_SECRET"`
	StripePublishableKey string `env:"STRIPE_PUBLISHABLE_KEY"`
	StripePrice3Months   string `env:"STRIPE_PRICE_3_MONTHS"`
	StripePrice6Months   string `env:"STRIPE_PRICE_6_MONTHS"`
	StripePrice12Months  string `env:"STRIPE_PRICE_12_MONTHS"`
	StripePriceLifetime  string `env:"STRIPE_PRICE_LIFETIME"`

	FreshdeskDomain string `env:"FRESHDESK_DOMAIN"`
	FreshdeskAPIKey string `env:"FRESHDESK_API_KEY"`

	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	AdminEmail           string `env:"ADMIN_EMAIL" envDefault:"admin@example.com"`
	FromEmail            string `env:"FROM_EMAIL" envDefault:"Wyckoff Pro <onboarding@wyckoffpro.app>"`

	// Identity provider. When IssuerURL is set, session tokens are verified
	// against the provider's JWKS; otherwise JWTSecret (HS256) is used.
	IdentityIssuerURL string `env:"IDENTITY_ISSUER_URL"`
	IdentityAudience  string `env:"IDENTITY_AUDIENCE"`
	IdentityAPIURL    string `env:"IDENTITY_API_URL"`
	IdentityAPIKey    string `env:"IDENTITY_API_KEY"`
	IdentityJWTSecret string `env:"IDENTITY_JWT_SECRET"`
}

// Load reads .env (if present) and parses the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("Failed to parse environment: %v", err)
	}
	return cfg
}

// PriceID returns the pre-provisioned Stripe price id for a plan, if any.
func (c *Config) PriceID(planID string) string {
	switch planID {
	case "3-months":
		return c.StripePrice3Months
	case "6-months":
		return c.StripePrice6Months
	case "12-months":
		return c.StripePrice12Months
	case "lifetime":
		return c.StripePriceLifetime
	}
	return ""
}
