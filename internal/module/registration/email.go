package registration

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// EmailSender sends a registration confirmation to a participant.
type EmailSender interface {
	SendConfirmation(ctx context.Context, to, name, teamName string) error
}

// SMTPConfig holds SMTP configuration.
type SMTPConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	FromAddress string
	FromName    string
}

// SMTPEmailSender sends confirmation emails via SMTP. Sends go through a
// circuit breaker so a dead mail host cannot stall or pile up submissions;
// registration itself never depends on the email outcome.
type SMTPEmailSender struct {
	config  *SMTPConfig
	breaker *gobreaker.CircuitBreaker[any]
	logger  *zap.Logger
}

// NewSMTPEmailSender creates a new SMTP confirmation sender.
func NewSMTPEmailSender(config *SMTPConfig, logger *zap.Logger) *SMTPEmailSender {
	if logger == nil {
		logger = zap.NewNop()
	}

	settings := gobreaker.Settings{
		Name:    "smtp",
		Timeout: time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	}

	return &SMTPEmailSender{
		config:  config,
		breaker: gobreaker.NewCircuitBreaker[any](settings),
		logger:  logger,
	}
}

// SendConfirmation sends the registration confirmation email.
func (s *SMTPEmailSender) SendConfirmation(ctx context.Context, to, name, teamName string) error {
	body, err := s.renderTemplate(confirmationEmailTemplate, map[string]string{
		"Name":     name,
		"TeamName": teamName,
	})
	if err != nil {
		return fmt.Errorf("render template: %w", err)
	}

	subject := "Registration confirmed - Nxzen Hackathon 2025"

	_, err = s.breaker.Execute(func() (any, error) {
		return nil, s.sendEmail(to, subject, body)
	})
	if err != nil {
		s.logger.Error("failed to send confirmation email",
			zap.String("to", to),
			zap.Error(err),
		)
		return fmt.Errorf("send confirmation: %w", err)
	}

	s.logger.Info("confirmation email sent", zap.String("to", to))
	return nil
}

func (s *SMTPEmailSender) sendEmail(to, subject, body string) error {
	from := s.config.FromAddress
	if s.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromAddress)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		from, to, subject, body)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	var auth smtp.Auth
	if s.config.User != "" && s.config.Password != "" {
		auth = smtp.PlainAuth("", s.config.User, s.config.Password, s.config.Host)
	}

	return smtp.SendMail(addr, auth, s.config.FromAddress, []string{to}, []byte(msg))
}

func (s *SMTPEmailSender) renderTemplate(tmpl string, data map[string]string) (string, error) {
	t, err := template.New("email").Parse(tmpl)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const confirmationEmailTemplate = `
<html>
<body>
	<h2>You're in, {{.Name}}!</h2>
	<p>Team <strong>{{.TeamName}}</strong> is registered for Nxzen Hackathon 2025.</p>
	<p>We'll follow up with Round 1 instructions before the event. Until then,
	keep an eye on this inbox.</p>
	<p>- The Nxzen Hackathon team</p>
</body>
</html>
`
