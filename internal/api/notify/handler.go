package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"wyckoffpro-backend/internal/app/http/middleware"
	"wyckoffpro-backend/internal/infra/mailer"
)

// IdentityWriter persists the linked TradingView handle on the identity
// provider profile.
type IdentityWriter interface {
	SetTradingViewUsername(ctx context.Context, id, username string) error
}

type Handler struct {
	identities IdentityWriter
	mail       *mailer.Dispatcher
	adminEmail string
	log        *slog.Logger
}

func NewHandler(identities IdentityWriter, mail *mailer.Dispatcher, adminEmail string, log *slog.Logger) *Handler {
	return &Handler{identities: identities, mail: mail, adminEmail: adminEmail, log: log}
}

type tradingViewRequest struct {
	TradingViewUsername string `json:"tradingViewUsername"`
}

// TradingViewUsername stores the submitted handle in the user's identity
// profile and notifies the operator, who grants indicator access manually
// on TradingView. The operator email is the action path; the metadata write
// is best-effort.
func (h *Handler) TradingViewUsername(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body tradingViewRequest
	if err := c.ShouldBindJSON(&body); err != nil || body.TradingViewUsername == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "TradingView username is required"})
		return
	}

	if err := h.identities.SetTradingViewUsername(c.Request.Context(), user.ID, body.TradingViewUsername); err != nil {
		h.log.Warn("failed to store TradingView username on profile", "user", user.ID, "error", err)
	}

	subject := fmt.Sprintf("🎯 New TradingView Username: %s", body.TradingViewUsername)
	h.mail.Dispatch(c.Request.Context(), h.adminEmail, subject, tradingViewEmail(user.DisplayName(), user.Email, user.ID, body.TradingViewUsername))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Admin notified successfully",
	})
}

func tradingViewEmail(name, email, userID, username string) string {
	return fmt.Sprintf(`
<div style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #2962FF; margin-bottom: 20px;">New TradingView Username Submitted</h2>
  <div style="background: #f8f9fd; border-radius: 12px; padding: 20px; margin-bottom: 20px;">
    <p style="margin: 0 0 10px 0;"><strong>User:</strong> %s</p>
    <p style="margin: 0 0 10px 0;"><strong>Email:</strong> %s</p>
    <p style="margin: 0 0 10px 0;"><strong>User ID:</strong> %s</p>
    <p style="margin: 0; font-size: 18px;"><strong>TradingView Username:</strong> <span style="color: #2962FF; font-weight: bold;">%s</span></p>
  </div>
  <p style="color: #5d6069; font-size: 14px;">
    Grant access to the indicator for this user on TradingView:
    <a href="https://www.tradingview.com/u/%s/" style="color: #2962FF;">tradingview.com/u/%s</a>
  </p>
  <hr style="border: none; border-top: 1px solid #e0e3eb; margin: 20px 0;">
  <p style="color: #787b86; font-size: 12px;">This notification was sent from Wyckoff Pro Dashboard.</p>
</div>`, name, email, userID, username, username, username)
}
