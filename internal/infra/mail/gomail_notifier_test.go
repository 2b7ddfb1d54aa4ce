package mail

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "gopkg.in/gomail.v2"

	"credo/config"
	"credo/internal/domain/service"
)

// fakeSender records messages instead of dialing an SMTP host.
type fakeSender struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)

	return nil
}

func TestSMTPNotifier_SendEmail(t *testing.T) {
	sender := &fakeSender{}
	notifier := newNotifierWithSender(sender, "noreply@example.com")

	err := notifier.SendEmail(context.Background(), service.Message{
		Receiver: "alice@example.com",
		Subject:  "Password reset",
		Body:     "<p>hello</p>",
	})

	require.NoError(t, err)
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, []string{"noreply@example.com"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"alice@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Password reset"}, msg.GetHeader("Subject"))
}

func TestSMTPNotifier_SendEmailFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("connection refused")}
	notifier := newNotifierWithSender(sender, "noreply@example.com")

	err := notifier.SendEmail(context.Background(), service.Message{
		Receiver: "alice@example.com",
		Subject:  "Password reset",
		Body:     "<p>hello</p>",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send email")
}

func TestSMTPNotifier_SendEmailCanceledContext(t *testing.T) {
	sender := &fakeSender{}
	notifier := newNotifierWithSender(sender, "noreply@example.com")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := notifier.SendEmail(ctx, service.Message{Receiver: "alice@example.com"})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, sender.sent)
}

func TestNewSMTPNotifier_RequiresMailConfig(t *testing.T) {
	_, err := NewSMTPNotifier(&config.Config{})
	require.Error(t, err)
}

func TestNewSMTPNotifier_FallsBackToUsernameAsFrom(t *testing.T) {
	notifier, err := NewSMTPNotifier(&config.Config{
		Mail: &config.MailConfig{
			Host:     "smtp.example.com",
			Port:     587,
			Username: "robot@example.com",
			Password: "secret",
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "robot@example.com", notifier.(*smtpNotifier).from)
}
