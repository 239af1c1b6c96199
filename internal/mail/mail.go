// Package mail 負責寄送 OTP 與歡迎信，實際投遞交給 SendGrid
package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

var (
	ErrNotConfigured = errors.New("mail delivery is not configured")
	ErrDelivery      = errors.New("mail delivery failed")
)

const senderName = "EcoCoin"

// Mailer 寄送單封 HTML 信件
type Mailer interface {
	Send(ctx context.Context, to, subject, plain, html string) error
}

type sender interface {
	SendWithContext(ctx context.Context, email *sgmail.SGMailV3) (*rest.Response, error)
}

var newSendClient = func(key string) sender {
	return sendgrid.NewSendClient(key)
}

type SendGridMailer struct {
	apiKey string
	from   string
	client sender
}

// NewSendGridMailer apiKey 為空時仍回傳 Mailer，但每次寄送都回傳 ErrNotConfigured
func NewSendGridMailer(apiKey, from string) *SendGridMailer {
	m := &SendGridMailer{apiKey: apiKey, from: from}
	if apiKey != "" {
		m.client = newSendClient(apiKey)
	}
	return m
}

func (m *SendGridMailer) Send(ctx context.Context, to, subject, plain, html string) error {
	if m.client == nil {
		return ErrNotConfigured
	}
	msg := sgmail.NewSingleEmail(
		sgmail.NewEmail(senderName, m.from),
		subject,
		sgmail.NewEmail("", to),
		plain,
		html,
	)
	resp, err := m.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: sendgrid status %d", ErrDelivery, resp.StatusCode)
	}
	return nil
}

// Sent 是 FakeMailer 記錄的一封信
type Sent struct {
	To      string
	Subject string
	Plain   string
	HTML    string
}

// FakeMailer 記錄所有寄出的信；設定 Err 時每次寄送都回傳該錯誤
type FakeMailer struct {
	Sent []Sent
	Err  error
}

func (f *FakeMailer) Send(_ context.Context, to, subject, plain, html string) error {
	if f.Err != nil {
		return f.Err
	}
	f.Sent = append(f.Sent, Sent{To: to, Subject: subject, Plain: plain, HTML: html})
	return nil
}
