package notifications

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
	"time"

	"tourflo/pkg/logger"
)

// EmailService delivers a notification to its recipient's inbox
type EmailService interface {
	SendNotification(ctx context.Context, notification *EmailNotification) error
	SendHTML(ctx context.Context, to, subject, htmlBody string) error
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	UseTLS    bool
	Timeout   time.Duration
}

type SMTPEmailService struct {
	config    *SMTPConfig
	templates map[NotificationType]*template.Template
}

func NewSMTPEmailService(config *SMTPConfig) *SMTPEmailService {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	return &SMTPEmailService{
		config:    config,
		templates: loadTemplates(),
	}
}

func (s *SMTPEmailService) SendNotification(ctx context.Context, notification *EmailNotification) error {
	if notification.RecipientEmail == "" {
		return fmt.Errorf("notification %s has no recipient email", notification.ID)
	}

	tmpl, ok := s.templates[notification.Type]
	if !ok {
		return fmt.Errorf("no email template for notification type %s", notification.Type)
	}

	data := map[string]interface{}{
		"RecipientName": notification.RecipientName,
	}
	for k, v := range notification.TemplateData {
		data[k] = v
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render template for %s: %w", notification.Type, err)
	}

	subject := notification.Subject
	if subject == "" {
		subject = defaultSubject(notification.Type)
	}

	return s.SendHTML(ctx, notification.RecipientEmail, subject, body.String())
}

func (s *SMTPEmailService) SendHTML(ctx context.Context, to, subject, htmlBody string) error {
	from := s.config.FromEmail
	if s.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	done := make(chan error, 1)
	go func() {
		done <- s.send(addr, auth, to, []byte(msg.String()))
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send email to %s: %w", to, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.config.Timeout):
		return fmt.Errorf("timed out sending email to %s", to)
	}
}

func (s *SMTPEmailService) send(addr string, auth smtp.Auth, to string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if s.config.UseTLS {
		tlsConfig := &tls.Config{ServerName: s.config.Host}
		if err := client.StartTLS(tlsConfig); err != nil {
			return err
		}
	}

	if err := client.Auth(auth); err != nil {
		return err
	}
	if err := client.Mail(s.config.FromEmail); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

// LogEmailService stands in when SMTP is not configured, which is the
// normal state in local development
type LogEmailService struct{}

func NewLogEmailService() *LogEmailService {
	return &LogEmailService{}
}

func (l *LogEmailService) SendNotification(ctx context.Context, notification *EmailNotification) error {
	logger.GetDefault().Info("email delivery skipped, SMTP not configured",
		"type", notification.Type,
		"recipient", notification.RecipientEmail,
		"subject", notification.Subject,
	)
	return nil
}

func (l *LogEmailService) SendHTML(ctx context.Context, to, subject, htmlBody string) error {
	logger.GetDefault().Info("email delivery skipped, SMTP not configured", "to", to, "subject", subject)
	return nil
}

func defaultSubject(notType NotificationType) string {
	switch notType {
	case NotificationTypeBookingConfirmed:
		return "Your tour is booked!"
	case NotificationTypeBookingCancelled:
		return "Your booking was cancelled"
	case NotificationTypeWaitlistSpotAvailable:
		return "A spot opened up on your tour"
	case NotificationTypeSlotCancelled:
		return "Your tour date was cancelled"
	default:
		return "TourFlo update"
	}
}

func loadTemplates() map[NotificationType]*template.Template {
	return map[NotificationType]*template.Template{
		NotificationTypeBookingConfirmed: template.Must(template.New("booking_confirmed").Parse(`
<h2>You're going, {{.RecipientName}}!</h2>
<p>Your booking for <strong>{{.ExperienceTitle}}</strong> is confirmed.</p>
<p>Reference: <strong>{{.Reference}}</strong></p>
<p>Date: {{.Date}}<br>Guests: {{.GuestCount}}<br>Total: {{.Currency}} {{.TotalAmount}}</p>
<p>Show your reference at check-in. See you there!</p>`)),

		NotificationTypeBookingCancelled: template.Must(template.New("booking_cancelled").Parse(`
<h2>Booking cancelled</h2>
<p>Hi {{.RecipientName}}, your booking <strong>{{.Reference}}</strong> for {{.ExperienceTitle}} has been cancelled.</p>
{{if .RefundAmount}}<p>A refund of {{.Currency}} {{.RefundAmount}} is on its way.</p>{{end}}
<p>We hope to see you on another tour soon.</p>`)),

		NotificationTypeWaitlistSpotAvailable: template.Must(template.New("waitlist_spot").Parse(`
<h2>Good news, {{.RecipientName}}!</h2>
<p>A spot just opened up on <strong>{{.ExperienceTitle}}</strong>.</p>
<p>You have until <strong>{{.ExpiresAt}}</strong> to claim it before it goes to the next person in line.</p>
<p><a href="{{.ClaimURL}}">Book your spot now</a></p>`)),

		NotificationTypeSlotCancelled: template.Must(template.New("slot_cancelled").Parse(`
<h2>Tour date cancelled</h2>
<p>Hi {{.RecipientName}}, we're sorry: the operator has cancelled <strong>{{.ExperienceTitle}}</strong> on {{.Date}}.</p>
<p>Reason: {{.Reason}}</p>
{{if .RefundAmount}}<p>Your payment of {{.Currency}} {{.RefundAmount}} will be refunded.</p>{{end}}
<p>Browse other dates or experiences any time.</p>`)),
	}
}
