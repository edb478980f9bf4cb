package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mrz1836/postmark"
)

// ErrSendFailed wraps every delivery failure.
var ErrSendFailed = errors.New("mailer: failed to send email")

// Sender delivers one transactional email.
type Sender interface {
	Send(ctx context.Context, to, subject, html string) error
}

// PostmarkSender delivers through Postmark's transactional API.
type PostmarkSender struct {
	client *postmark.Client
	from   string
}

func NewPostmarkSender(serverToken, accountToken, from string) *PostmarkSender {
	return &PostmarkSender{
		client: postmark.NewClient(serverToken, accountToken),
		from:   from,
	}
}

func (s *PostmarkSender) Send(ctx context.Context, to, subject, html string) error {
	resp, err := s.client.SendEmail(ctx, postmark.Email{
		From:     s.from,
		To:       to,
		Subject:  subject,
		HTMLBody: html,
	})
	if err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(ErrSendFailed, fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message))
	}
	return nil
}

// DevSender logs instead of sending. Used when no email token is configured
// so local runs still show what would have gone out.
type DevSender struct {
	log *slog.Logger
}

func NewDevSender(log *slog.Logger) *DevSender {
	return &DevSender{log: log}
}

func (s *DevSender) Send(_ context.Context, to, subject, _ string) error {
	s.log.Info("email (mock)", "to", to, "subject", subject)
	return nil
}

// Dispatcher is the fire-and-forget layer used by the webhook processor: a
// failed email is logged and swallowed so it can never fail the webhook
// acknowledgment and trigger a full event redelivery.
type Dispatcher struct {
	sender Sender
	log    *slog.Logger
}

func NewDispatcher(sender Sender, log *slog.Logger) *Dispatcher {
	return &Dispatcher{sender: sender, log: log}
}

func (d *Dispatcher) Dispatch(ctx context.Context, to, subject, html string) {
	if err := d.sender.Send(ctx, to, subject, html); err != nil {
		d.log.Error("email dispatch failed", "to", to, "subject", subject, "error", err)
		return
	}
	d.log.Info("email sent", "to", to, "subject", subject)
}
