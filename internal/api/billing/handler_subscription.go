package billing

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wyckoffpro-backend/internal/app/http/middleware"
)

// Subscription serves the dashboard's subscription view. Soft-auth: an
// unresolvable identity or any upstream failure degrades to a
// no-subscription view instead of an error, so the page always renders.
func (h *Handler) Subscription(c *gin.Context) {
	user := middleware.CurrentUser(c)

	res := h.resolver.Resolve(c.Request.Context(), user)
	if res.Degraded {
		h.log.Warn("subscription state degraded to default view", "error", res.Cause)
	}

	c.JSON(http.StatusOK, res.View)
}
