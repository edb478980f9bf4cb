package users

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wyckoffpro-backend/internal/app/http/middleware"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Me returns the dashboard's view of the resolved identity. Everything here
// lives in the external identity provider; this is a read-through.
func (h *Handler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                  user.ID,
		"email":               user.Email,
		"firstName":           user.FirstName,
		"lastName":            user.LastName,
		"displayName":         user.DisplayName(),
		"tradingViewUsername": user.TradingViewUsername(),
	})
}
