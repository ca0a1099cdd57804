package mailer

import (
	"fmt"
	"html"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendContactMessage(fromName, fromEmail, message string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	coachEmail  string
}

func NewEmailService(host string, port int, username, password, senderEmail, coachEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		coachEmail:  coachEmail,
	}
}

func (s *emailService) SendContactMessage(fromName, fromEmail, message string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", s.coachEmail)
	m.SetHeader("Reply-To", fromEmail)
	m.SetHeader("Subject", fmt.Sprintf("New contact message from %s", fromName))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>New Contact Message</h2>
			<p><strong>From:</strong> %s (%s)</p>
			<p>%s</p>
		</div>
	`, html.EscapeString(fromName), html.EscapeString(fromEmail), html.EscapeString(message))

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send contact message: %w", err)
	}
	return nil
}
