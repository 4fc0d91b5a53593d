package contact

import (
	"context"
	"fmt"
	"html"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// Message is a plain-text email.
type Message struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	Text    string
}

// SendGridMailer delivers Messages through the SendGrid v3 API.
type SendGridMailer struct {
	apiKey   string
	fromName string
	logger   *zap.Logger
}

func NewSendGridMailer(apiKey, fromName string, logger *zap.Logger) *SendGridMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SendGridMailer{apiKey: apiKey, fromName: fromName, logger: logger.Named("sendgrid")}
}

func (m *SendGridMailer) Send(ctx context.Context, msg Message) error {
	if m.apiKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if msg.From == "" {
		return fmt.Errorf("from address is empty")
	}
	if msg.To == "" {
		return fmt.Errorf("to address is empty")
	}

	message := mail.NewSingleEmail(
		mail.NewEmail(m.fromName, msg.From),
		msg.Subject,
		mail.NewEmail("", msg.To),
		msg.Text,
		fmt.Sprintf("<pre>%s</pre>", html.EscapeString(msg.Text)),
	)
	if msg.ReplyTo != "" {
		message.SetReplyTo(mail.NewEmail("", msg.ReplyTo))
	}

	response, err := sendgrid.NewSendClient(m.apiKey).SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if response.StatusCode >= 400 {
		m.logger.Error("sendgrid rejected mail", zap.Int("status", response.StatusCode), zap.String("body", response.Body))
		return fmt.Errorf("sendgrid send failed: status=%d", response.StatusCode)
	}
	m.logger.Debug("mail sent", zap.Int("status", response.StatusCode), zap.String("subject", msg.Subject))
	return nil
}
