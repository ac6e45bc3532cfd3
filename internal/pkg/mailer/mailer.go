package mailer

import (
	"context"
	"fmt"
	"log"
	"net/smtp"

	"github.com/jordan-wright/email"
)

// Mailer is the fire-and-forget notification channel. Delivery failure is
// reported to callers but never blocks or rolls back the operation that
// triggered it.
type Mailer interface {
	SendOTP(ctx context.Context, to, code string) error
}

// Console logs codes instead of sending mail. Dev/test backend.
type Console struct {
	enabled bool
}

func NewConsole(enabled bool) *Console {
	return &Console{enabled: enabled}
}

func (m *Console) SendOTP(_ context.Context, to, code string) error {
	if m.enabled {
		log.Printf("[DEV-EMAIL] verification code email=%s code=%s", to, code)
	}
	return nil
}

// SMTP sends verification codes through a plain-auth SMTP relay.
type SMTP struct {
	host string
	user string
	pass string
	from string
	addr string
}

func NewSMTP(host string, port int, user, pass, from string) *SMTP {
	return &SMTP{
		host: host,
		user: user,
		pass: pass,
		from: from,
		addr: fmt.Sprintf("%s:%d", host, port),
	}
}

func (m *SMTP) SendOTP(_ context.Context, to, code string) error {
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = "Your verification code"
	e.Text = []byte(fmt.Sprintf("Your verification code is %s. It expires in a few minutes.", code))

	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	if err := e.Send(m.addr, auth); err != nil {
		return fmt.Errorf("mailer: send otp: %w", err)
	}
	return nil
}
