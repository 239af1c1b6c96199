package mail

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/require"
)

type stubSender struct {
	resp *rest.Response
	err  error
	got  *sgmail.SGMailV3
}

func (s *stubSender) SendWithContext(_ context.Context, email *sgmail.SGMailV3) (*rest.Response, error) {
	s.got = email
	return s.resp, s.err
}

func restore() {
	newSendClient = func(key string) sender { return sendgrid.NewSendClient(key) }
}

func TestSendGridMailer(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		m := NewSendGridMailer("", "from@eco.test")
		err := m.Send(context.Background(), "a@x.com", "s", "p", "h")
		require.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("provider error", func(t *testing.T) {
		t.Cleanup(restore)
		stub := &stubSender{err: errors.New("net")}
		newSendClient = func(string) sender { return stub }
		m := NewSendGridMailer("key", "from@eco.test")
		err := m.Send(context.Background(), "a@x.com", "s", "p", "h")
		require.ErrorIs(t, err, ErrDelivery)
	})

	t.Run("provider rejects", func(t *testing.T) {
		t.Cleanup(restore)
		stub := &stubSender{resp: &rest.Response{StatusCode: http.StatusUnauthorized}}
		newSendClient = func(string) sender { return stub }
		m := NewSendGridMailer("key", "from@eco.test")
		err := m.Send(context.Background(), "a@x.com", "s", "p", "h")
		require.ErrorIs(t, err, ErrDelivery)
		require.ErrorContains(t, err, "401")
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		stub := &stubSender{resp: &rest.Response{StatusCode: http.StatusAccepted}}
		var gotKey string
		newSendClient = func(k string) sender { gotKey = k; return stub }
		m := NewSendGridMailer("key", "from@eco.test")
		require.NoError(t, m.Send(context.Background(), "a@x.com", "subject", "plain", "<p>html</p>"))
		require.Equal(t, "key", gotKey)
		require.Equal(t, "subject", stub.got.Subject)
		require.Equal(t, "from@eco.test", stub.got.From.Address)
		require.Equal(t, "a@x.com", stub.got.Personalizations[0].To[0].Address)
	})
}

func TestBodies(t *testing.T) {
	plain, html := OTPBody("123456", 10)
	require.Contains(t, plain, "123456")
	require.Contains(t, html, "<strong>123456</strong>")
	require.Contains(t, html, "10 minutes")

	plain, html = WelcomeBody("Alice", "654321")
	require.Contains(t, plain, "654321")
	require.Contains(t, html, "Alice")
}
