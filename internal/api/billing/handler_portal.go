package billing

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wyckoffpro-backend/internal/app/http/middleware"
	infrabilling "wyckoffpro-backend/internal/infra/billing"
)

// CreatePortal opens a billing-portal session for the current customer. All
// subscription mutations (cancel, payment method, plan change) happen inside
// the provider's own portal UI and are observed back via webhooks.
func (h *Handler) CreatePortal(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if user.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email not found"})
		return
	}

	cus, err := h.billing.FindCustomerByEmail(c.Request.Context(), user.Email)
	if err != nil {
		if errors.Is(err, infrabilling.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		h.log.Error("customer lookup failed", "email", user.Email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating portal session"})
		return
	}

	session, err := h.billing.CreatePortalSession(c.Request.Context(), cus.ID)
	if err != nil {
		h.log.Error("create portal session failed", "customer", cus.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating portal session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": session.URL})
}
