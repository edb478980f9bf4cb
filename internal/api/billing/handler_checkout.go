package billing

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"wyckoffpro-backend/internal/app/http/middleware"
	"wyckoffpro-backend/internal/domain/plans"
	infrabilling "wyckoffpro-backend/internal/infra/billing"
)

type checkoutRequest struct {
	PlanID string `json:"planId" binding:"omitempty,plan"`
	// Trial defaults to opted-in for recurring plans; only an explicit
	// false turns it off.
	Trial *bool `json:"trial"`
}

const defaultPlanID = "6-months"

// CreateCheckoutSession creates an embedded checkout session for the
// requested plan and returns its client secret.
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}
	if user.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email not found"})
		return
	}

	var body checkoutRequest
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan"})
		return
	}

	planID := body.PlanID
	if planID == "" {
		planID = c.Query("planId")
	}
	if planID == "" {
		planID = defaultPlanID
	}

	plan, ok := plans.ByID(planID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan"})
		return
	}

	wantsTrial := body.Trial == nil || *body.Trial

	cus, err := h.billing.EnsureCustomer(c.Request.Context(), user.Email, user.DisplayName(), map[string]string{
		"userId": user.ID,
	})
	if err != nil {
		if errors.Is(err, infrabilling.ErrNotConfigured) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
			return
		}
		h.log.Error("ensure customer failed", "email", user.Email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating checkout session"})
		return
	}

	session, err := h.billing.CreateCheckoutSession(c.Request.Context(), infrabilling.CheckoutParams{
		Plan:       plan,
		PriceID:    h.cfg.PriceID(plan.ID),
		CustomerID: cus.ID,
		UserID:     user.ID,
		Trial:      wantsTrial,
	})
	if err != nil {
		h.log.Error("create checkout session failed", "plan", plan.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating checkout session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"clientSecret": session.ClientSecret})
}
