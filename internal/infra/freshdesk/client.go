package freshdesk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// APIError carries a non-2xx helpdesk response so the HTTP handler can
// forward the provider's status code with its body nested under details.
type APIError struct {
	StatusCode int
	Body       json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("freshdesk: provider returned %d", e.StatusCode)
}

// Client performs basic-auth calls against a Freshdesk domain.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(domain, apiKey string) *Client {
	return &Client{
		baseURL:    "https://" + domain,
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
	}
}

// TicketRequest captures one support-ticket submission. Requester name and
// email come from the resolved identity, never from the request body.
type TicketRequest struct {
	Subject             string
	Description         string
	Email               string
	Name                string
	Priority            int // 1=Low 2=Medium 3=High 4=Urgent, zero defaults to Medium
	Type                string
	UserID              string
	TradingViewUsername string
}

// Ticket is the dashboard-facing projection of a helpdesk ticket.
type Ticket struct {
	ID           int64  `json:"id"`
	Subject      string `json:"subject"`
	Description  string `json:"description"`
	Status       string `json:"status"`
	StatusCode   int    `json:"statusCode"`
	Priority     string `json:"priority"`
	PriorityCode int    `json:"priorityCode"`
	Type         string `json:"type"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

const (
	statusOpen   = 2
	sourcePortal = 2
)

// CreateTicket submits a ticket and returns the provider-assigned id.
func (c *Client) CreateTicket(ctx context.Context, t TicketRequest) (int64, error) {
	priority := t.Priority
	if priority == 0 {
		priority = 2
	}
	ticketType := t.Type
	if ticketType == "" {
		ticketType = "Question"
	}

	payload := map[string]any{
		"subject":     t.Subject,
		"description": t.Description,
		"email":       t.Email,
		"name":        t.Name,
		"priority":    priority,
		"status":      statusOpen,
		"type":        ticketType,
		"source":      sourcePortal,
		"custom_fields": map[string]string{
			"cf_user_id":              t.UserID,
			"cf_tradingview_username": t.TradingViewUsername,
		},
		"tags": []string{"wyckoff-pro", "dashboard"},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("freshdesk: encode ticket: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/v2/tickets", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, apiError(resp)
	}

	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return 0, fmt.Errorf("freshdesk: decode ticket: %w", err)
	}
	return created.ID, nil
}

// TicketsByEmail lists the requester's tickets. A provider 404 means the
// email has never filed a ticket and comes back as an empty list.
func (c *Client) TicketsByEmail(ctx context.Context, email string) ([]Ticket, error) {
	path := "/api/v2/tickets?email=" + url.QueryEscape(email) + "&include=requester"
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return []Ticket{}, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiError(resp)
	}

	var raw []struct {
		ID              int64  `json:"id"`
		Subject         string `json:"subject"`
		DescriptionText string `json:"description_text"`
		Status          int    `json:"status"`
		Priority        int    `json:"priority"`
		Type            string `json:"type"`
		CreatedAt       string `json:"created_at"`
		UpdatedAt       string `json:"updated_at"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("freshdesk: decode tickets: %w", err)
	}

	tickets := make([]Ticket, 0, len(raw))
	for _, t := range raw {
		tickets = append(tickets, Ticket{
			ID:           t.ID,
			Subject:      t.Subject,
			Description:  t.DescriptionText,
			Status:       StatusLabel(t.Status),
			StatusCode:   t.Status,
			Priority:     PriorityLabel(t.Priority),
			PriorityCode: t.Priority,
			Type:         t.Type,
			CreatedAt:    t.CreatedAt,
			UpdatedAt:    t.UpdatedAt,
		})
	}
	return tickets, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("freshdesk: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.apiKey, "X")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("freshdesk: request failed: %w", err)
	}
	return resp, nil
}

func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
	if !json.Valid(body) {
		body, _ = json.Marshal(string(body))
	}
	return &APIError{StatusCode: resp.StatusCode, Body: body}
}
