package email

import (
	"fmt"
	"net/smtp"
	"os"
)

type EmailService struct {
	host     string
	port     string
	user     string
	password string
	from     string
	to       string
}

func NewEmailService() *EmailService {
	return &EmailService{
		host:     os.Getenv("SMTP_HOST"),
		port:     os.Getenv("SMTP_PORT"),
		user:     os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     os.Getenv("SMTP_FROM"),
		to:       os.Getenv("SMTP_NOTIFY_TO"),
	}
}

// Enabled reports whether SMTP is configured; notification is optional.
func (e *EmailService) Enabled() bool {
	return e.host != "" && e.to != ""
}

// SendContactNotification forwards a contact form submission to the owner.
func (e *EmailService) SendContactNotification(name, senderEmail, message string) error {
	subject := "New contact message - JOYDAO"
	body := fmt.Sprintf(`New message from the contact form.

From: %s <%s>

%s
`, name, senderEmail, message)

	raw := fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"\r\n"+
		"%s\r\n", e.from, e.to, subject, body)

	auth := smtp.PlainAuth("", e.user, e.password, e.host)
	addr := fmt.Sprintf("%s:%s", e.host, e.port)

	if err := smtp.SendMail(addr, auth, e.from, []string{e.to}, []byte(raw)); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}
