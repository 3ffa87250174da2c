package email

import (
	"fmt"

	"readly_backend/internal/config"

	"gopkg.in/gomail.v2"
)

// SMTPProvider реализует Provider поверх gomail
type SMTPProvider struct {
	cfg      *config.Config
	renderer *TemplateManager
}

func NewSMTPProvider(cfg *config.Config) *SMTPProvider {
	return &SMTPProvider{
		cfg:      cfg,
		renderer: NewTemplateManager(),
	}
}

// Send отправляет email сообщение
func (p *SMTPProvider) Send(email *Email) error {
	if err := p.Validate(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	from := email.From
	if from == "" {
		from = p.cfg.Email.FromEmail
	}
	m.SetHeader("From", from)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	if email.HTMLBody != "" {
		m.SetBody("text/html", email.HTMLBody)
	} else {
		m.SetBody("text/plain", email.Body)
	}

	d := gomail.NewDialer(
		p.cfg.Email.SMTPHost,
		p.cfg.Email.SMTPPort,
		p.cfg.Email.SMTPUsername,
		p.cfg.Email.SMTPPassword,
	)
	return d.DialAndSend(m)
}

// SendVerification отправляет email верификации
func (p *SMTPProvider) SendVerification(to string, token string) error {
	verificationURL := fmt.Sprintf("http://%s:%d/api/auth/verify?token=%s",
		p.cfg.Server.Host, p.cfg.Server.Port, token)

	html, err := p.renderer.Render("verification", TemplateData{
		"VerificationURL": verificationURL,
	})
	if err != nil {
		return err
	}

	return p.Send(&Email{
		To:       []string{to},
		Subject:  "Подтверждение email",
		HTMLBody: html,
	})
}

// SendPurchaseReceipt отправляет чек о покупке книги
func (p *SMTPProvider) SendPurchaseReceipt(to string, bookTitle string, amount float64, currency string) error {
	html, err := p.renderer.Render("purchase_receipt", TemplateData{
		"BookTitle": bookTitle,
		"Amount":    amount,
		"Currency":  currency,
	})
	if err != nil {
		return err
	}

	return p.Send(&Email{
		To:       []string{to},
		Subject:  "Покупка подтверждена",
		HTMLBody: html,
	})
}

// Validate проверяет конфигурацию провайдера
func (p *SMTPProvider) Validate() error {
	if p.cfg.Email.SMTPHost == "" {
		return fmt.Errorf("smtp host is not configured")
	}
	if p.cfg.Email.FromEmail == "" {
		return fmt.Errorf("from email is not configured")
	}
	return nil
}
