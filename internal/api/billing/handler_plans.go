package billing

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wyckoffpro-backend/internal/domain/plans"
)

// Plans serves the plan catalog. The pricing page renders from this
// endpoint and checkout reads the same table, so quoted and charged prices
// cannot drift apart.
func (h *Handler) Plans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"plans": plans.All})
}

// CheckoutConfig exposes the publishable key the embedded checkout needs to
// bootstrap on the client.
func (h *Handler) CheckoutConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"publishableKey": h.cfg.StripePublishableKey})
}
