package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wyckoffpro-backend/internal/app/http/middleware"
	"wyckoffpro-backend/internal/infra/identity"
	"wyckoffpro-backend/internal/infra/mailer"
)

type recordingSender struct {
	to      []string
	subject []string
	html    []string
}

func (r *recordingSender) Send(_ context.Context, to, subject, html string) error {
	r.to = append(r.to, to)
	r.subject = append(r.subject, subject)
	r.html = append(r.html, html)
	return nil
}

type fakeIdentityWriter struct {
	calls map[string]string
	err   error
}

func (f *fakeIdentityWriter) SetTradingViewUsername(_ context.Context, id, username string) error {
	if f.err != nil {
		return f.err
	}
	f.calls[id] = username
	return nil
}

func newNotifyRouter(writer *fakeIdentityWriter, sender *recordingSender, user *identity.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(writer, mailer.NewDispatcher(sender, log), "admin@example.com", log)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if user != nil {
			middleware.SetCurrentUser(c, user)
		}
	})
	r.POST("/api/notify-tradingview", h.TradingViewUsername)
	return r
}

func post(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/notify-tradingview", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func notifyUser() *identity.User {
	return &identity.User{ID: "user_1", Email: "trader@example.com", FirstName: "Ava", LastName: "Stone"}
}

func TestTradingViewUsernameRequiresUser(t *testing.T) {
	sender := &recordingSender{}
	r := newNotifyRouter(&fakeIdentityWriter{calls: map[string]string{}}, sender, nil)

	w := post(r, `{"tradingViewUsername":"ava_trades"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, sender.to)
}

func TestTradingViewUsernameRequired(t *testing.T) {
	sender := &recordingSender{}
	r := newNotifyRouter(&fakeIdentityWriter{calls: map[string]string{}}, sender, notifyUser())

	w := post(r, `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "TradingView username is required")
	assert.Empty(t, sender.to)
}

func TestTradingViewUsernameStoresAndNotifies(t *testing.T) {
	writer := &fakeIdentityWriter{calls: map[string]string{}}
	sender := &recordingSender{}
	r := newNotifyRouter(writer, sender, notifyUser())

	w := post(r, `{"tradingViewUsername":"ava_trades"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Admin notified successfully"}`, w.Body.String())
	assert.Equal(t, "ava_trades", writer.calls["user_1"])

	require.Len(t, sender.to, 1)
	assert.Equal(t, "admin@example.com", sender.to[0])
	assert.Contains(t, sender.subject[0], "ava_trades")
	assert.Contains(t, sender.html[0], "tradingview.com/u/ava_trades")
	assert.Contains(t, sender.html[0], "trader@example.com")
}

func TestTradingViewUsernameProfileWriteIsBestEffort(t *testing.T) {
	writer := &fakeIdentityWriter{calls: map[string]string{}, err: errors.New("provider down")}
	sender := &recordingSender{}
	r := newNotifyRouter(writer, sender, notifyUser())

	w := post(r, `{"tradingViewUsername":"ava_trades"}`)

	assert.Equal(t, http.StatusOK, w.Code, "operator email is the action path, not the metadata write")
	require.Len(t, sender.to, 1)
	assert.Equal(t, "admin@example.com", sender.to[0])
}
