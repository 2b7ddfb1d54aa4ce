// Package mail provides the SMTP implementation of the Notifier domain service.
package mail

import (
	"context"

	"github.com/pkg/errors"
	gomail "gopkg.in/gomail.v2"

	"credo/config"
	"credo/internal/domain/service"
)

// sender abstracts gomail's dialer so tests can intercept delivery.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// smtpNotifier delivers email through a plain SMTP dialer.
type smtpNotifier struct {
	sender sender
	from   string
}

// NewSMTPNotifier is the constructor for smtpNotifier.
func NewSMTPNotifier(cfg *config.Config) (service.Notifier, error) {
	if cfg.Mail == nil {
		return nil, errors.New("mail configuration must be provided")
	}

	dialer := gomail.NewDialer(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password)

	from := cfg.Mail.From
	if from == "" {
		from = cfg.Mail.Username
	}

	return &smtpNotifier{sender: dialer, from: from}, nil
}

// newNotifierWithSender is used by tests to substitute the SMTP dialer.
func newNotifierWithSender(s sender, from string) service.Notifier {
	return &smtpNotifier{sender: s, from: from}
}

// SendEmail delivers one message. The context is honored up front; gomail's
// dialer itself does not support cancellation mid-send.
func (n *smtpNotifier) SendEmail(ctx context.Context, msg service.Message) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", msg.Receiver)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.Body)

	if err := n.sender.DialAndSend(m); err != nil {
		return errors.Wrap(err, "failed to send email")
	}

	return nil
}
