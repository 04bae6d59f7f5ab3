package utils

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/reservalo/booking-api/config"
)

func SendEmail(to, subject, body string) error {
	cfg := config.Get()
	if cfg.SMTPHost == "" {
		return fmt.Errorf("SMTP is not configured")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", cfg.EmailUser)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass)

	return d.DialAndSend(m)
}

// SendVerificationEmail mails the account-activation link to a new provider.
func SendVerificationEmail(to, name, token string) error {
	cfg := config.Get()
	link := fmt.Sprintf("%s/verify?token=%s", cfg.FrontendBaseURL, token)
	body := fmt.Sprintf(`
		<p>Hola %s,</p>
		<p>Gracias por registrarte. Confirmá tu dirección de email para activar tu cuenta:</p>
		<p><a href="%s">Verificar mi email</a></p>
		<p>El enlace vence en 24 horas.</p>
	`, name, link)
	return SendEmail(to, "Verificá tu cuenta", body)
}
