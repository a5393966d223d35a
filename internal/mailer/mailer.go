// Package mailer sends candidate notification emails over SMTP.
package mailer

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type Config struct {
	Host        string
	Port        int
	Username    string
	Password    string
	SenderName  string
	SenderEmail string
	Company     string
}

type Mailer struct {
	cfg Config
	log *zap.Logger
}

func New(cfg Config, log *zap.Logger) *Mailer {
	if cfg.Username == "" {
		cfg.Username = cfg.SenderEmail
	}
	return &Mailer{cfg: cfg, log: log}
}

// Company names the hiring organization used in rendered templates.
func (m *Mailer) Company() string {
	return m.cfg.Company
}

// Send delivers one HTML email. Port 465 dials with SSL, anything else
// upgrades via STARTTLS.
func (m *Mailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(m.cfg.SenderEmail, m.cfg.SenderName))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	d.SSL = m.cfg.Port == 465

	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.log.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}
