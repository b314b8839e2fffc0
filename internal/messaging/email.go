package messaging

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// EmailSender dispatches verification codes over SMTP.
type EmailSender struct {
	from     string
	messages *Messages
	dialer   *gomail.Dialer
	logger   *zap.Logger
}

func NewEmailSender(host string, port int, email, password string, messages *Messages, logger *zap.Logger) *EmailSender {
	return &EmailSender{
		from:     email,
		messages: messages,
		dialer:   gomail.NewDialer(host, port, email, password),
		logger:   logger.Named("email"),
	}
}

func (s *EmailSender) Send(ctx context.Context, destination, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", destination)
	m.SetHeader("Subject", s.messages.EmailSubject())
	m.SetBody("text/plain", s.messages.EmailBody(code))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}

	s.logger.Info("verification email dispatched", zap.String("to", MaskEmail(destination)))

	return nil
}
