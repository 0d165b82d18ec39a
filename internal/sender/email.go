package sender

import (
	"context"
	"fmt"

	"github.com/Ramaseck1/njabatechBack-sub000/config"

	gopkgmail "gopkg.in/gomail.v2"
)

// EmailSender delivers notifications over SMTP. The destination must be an
// address the configured relay can route; SMS-capable relays accept phone
// number addresses.
type EmailSender struct {
	cfg *config.SMTP
}

func NewEmailSender(cfg *config.SMTP) *EmailSender {
	return &EmailSender{cfg: cfg}
}

func (s *EmailSender) Send(ctx context.Context, destination, subject, body string) error {
	if destination == "" {
		return fmt.Errorf("empty destination")
	}

	m := gopkgmail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", destination)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gopkgmail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)
	d.SSL = true
	return d.DialAndSend(m)
}
