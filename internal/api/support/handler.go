package support

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"wyckoffpro-backend/internal/app/http/middleware"
	"wyckoffpro-backend/internal/infra/freshdesk"
)

// Helpdesk is the slice of the Freshdesk adapter these handlers need.
type Helpdesk interface {
	CreateTicket(ctx context.Context, t freshdesk.TicketRequest) (int64, error)
	TicketsByEmail(ctx context.Context, email string) ([]freshdesk.Ticket, error)
}

type Handler struct {
	helpdesk Helpdesk
	log      *slog.Logger
}

func NewHandler(helpdesk Helpdesk, log *slog.Logger) *Handler {
	return &Handler{helpdesk: helpdesk, log: log}
}

type createTicketRequest struct {
	Subject     string `json:"subject"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Type        string `json:"type"`
}

// CreateTicket files a helpdesk ticket on behalf of the current user.
// Requester name and email always come from the resolved identity.
func (h *Handler) CreateTicket(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body createTicketRequest
	if err := c.ShouldBindJSON(&body); err != nil || body.Subject == "" || body.Description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Subject and description are required"})
		return
	}

	ticketID, err := h.helpdesk.CreateTicket(c.Request.Context(), freshdesk.TicketRequest{
		Subject:             body.Subject,
		Description:         body.Description,
		Email:               user.Email,
		Name:                user.DisplayName(),
		Priority:            body.Priority,
		Type:                body.Type,
		UserID:              user.ID,
		TradingViewUsername: user.TradingViewUsername(),
	})
	if err != nil {
		var apiErr *freshdesk.APIError
		if errors.As(err, &apiErr) {
			c.JSON(apiErr.StatusCode, gin.H{"error": "Failed to create ticket", "details": json.RawMessage(apiErr.Body)})
			return
		}
		h.log.Error("create ticket failed", "email", user.Email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"ticketId": ticketID,
		"message":  "Ticket created successfully",
	})
}

// ListTickets returns the current user's tickets, newest first as the
// provider orders them.
func (h *Handler) ListTickets(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	tickets, err := h.helpdesk.TicketsByEmail(c.Request.Context(), user.Email)
	if err != nil {
		var apiErr *freshdesk.APIError
		if errors.As(err, &apiErr) {
			c.JSON(apiErr.StatusCode, gin.H{"error": "Failed to fetch tickets", "details": json.RawMessage(apiErr.Body)})
			return
		}
		h.log.Error("list tickets failed", "email", user.Email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}
