package freshdesk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Client{
		baseURL:    srv.URL,
		apiKey:     "test-key",
		httpClient: srv.Client(),
	}
}

func TestCreateTicketDefaults(t *testing.T) {
	var got map[string]any

	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "test-key", user)
		assert.Equal(t, "X", pass)
		assert.Equal(t, "/api/v2/tickets", r.URL.Path)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 42}`))
	})

	id, err := c.CreateTicket(context.Background(), TicketRequest{
		Subject:     "Cannot log in",
		Description: "Error on load",
		Email:       "trader@example.com",
		Name:        "Jane Trader",
		UserID:      "user_1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	// Omitted priority defaults to 2 (Medium), omitted type to Question.
	assert.Equal(t, float64(2), got["priority"])
	assert.Equal(t, "Question", got["type"])
	assert.Equal(t, float64(2), got["status"], "new tickets open")
	assert.Equal(t, float64(2), got["source"], "portal source")
	assert.Equal(t, []any{"wyckoff-pro", "dashboard"}, got["tags"])

	fields, ok := got["custom_fields"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "user_1", fields["cf_user_id"])
}

func TestCreateTicketForwardsProviderError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"description":"Validation failed"}`))
	})

	_, err := c.CreateTicket(context.Background(), TicketRequest{
		Subject:     "x",
		Description: "y",
		Email:       "trader@example.com",
	})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.JSONEq(t, `{"description":"Validation failed"}`, string(apiErr.Body))
}

func TestTicketsByEmailMapsCodes(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "trader@example.com", r.URL.Query().Get("email"))
		_, _ = w.Write([]byte(`[
			{"id":1,"subject":"A","description_text":"a","status":2,"priority":1,"type":"Question","created_at":"2026-01-01T00:00:00Z","updated_at":"2026-01-02T00:00:00Z"},
			{"id":2,"subject":"B","description_text":"b","status":5,"priority":4,"type":"Problem","created_at":"2026-02-01T00:00:00Z","updated_at":"2026-02-02T00:00:00Z"},
			{"id":3,"subject":"C","description_text":"c","status":99,"priority":0,"type":"Other","created_at":"2026-03-01T00:00:00Z","updated_at":"2026-03-02T00:00:00Z"}
		]`))
	})

	tickets, err := c.TicketsByEmail(context.Background(), "trader@example.com")
	require.NoError(t, err)
	require.Len(t, tickets, 3)

	assert.Equal(t, "Open", tickets[0].Status)
	assert.Equal(t, "Low", tickets[0].Priority)
	assert.Equal(t, "Closed", tickets[1].Status)
	assert.Equal(t, "Urgent", tickets[1].Priority)
	assert.Equal(t, "Unknown", tickets[2].Status)
	assert.Equal(t, "Unknown", tickets[2].Priority)
	assert.Equal(t, "a", tickets[0].Description)
}

func TestTicketsByEmailNotFoundMeansEmpty(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	tickets, err := c.TicketsByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err, "a provider 404 is not an error")
	assert.Empty(t, tickets)
	assert.NotNil(t, tickets)
}
