package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"

	"github.com/voxedgemedia/media-api/internal/config"
)

// Sender delivers outbound email. Delivery failures are degraded, not fatal:
// callers decide whether to surface them.
type Sender interface {
	Send(ctx context.Context, to, subject, html string) error
}

// SMTPSender sends mail over SMTP, using implicit TLS on port 465 and
// STARTTLS on other ports.
type SMTPSender struct {
	cfg config.MailConfig
}

// NewSMTPSender constructs an SMTPSender from mail config.
func NewSMTPSender(cfg config.MailConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send delivers a single HTML message to one recipient.
func (s *SMTPSender) Send(ctx context.Context, to, subject, html string) error {
	if s == nil || s.cfg.Host == "" {
		return fmt.Errorf("mail: smtp transport not configured")
	}

	from := s.cfg.FromEmail
	msg := []byte(
		fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from) +
			fmt.Sprintf("To: %s\r\n", to) +
			fmt.Sprintf("Subject: %s\r\n", subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=\"utf-8\"\r\n" +
			"\r\n" +
			html,
	)

	serverAddr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	tlsConfig := &tls.Config{ServerName: s.cfg.Host}

	var client *smtp.Client
	if s.cfg.Port == 465 {
		conn, errDial := tls.Dial("tcp", serverAddr, tlsConfig)
		if errDial != nil {
			return fmt.Errorf("mail: dial: %w", errDial)
		}
		c, errClient := smtp.NewClient(conn, s.cfg.Host)
		if errClient != nil {
			_ = conn.Close()
			return fmt.Errorf("mail: smtp client: %w", errClient)
		}
		client = c
	} else {
		c, errDial := smtp.Dial(serverAddr)
		if errDial != nil {
			return fmt.Errorf("mail: dial: %w", errDial)
		}
		if errTLS := c.StartTLS(tlsConfig); errTLS != nil {
			_ = c.Close()
			return fmt.Errorf("mail: starttls: %w", errTLS)
		}
		client = c
	}
	defer func() { _ = client.Quit() }()

	if err := ctx.Err(); err != nil {
		return err
	}

	if s.cfg.Username != "" {
		authPlain := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
		if errAuth := client.Auth(authPlain); errAuth != nil {
			return fmt.Errorf("mail: auth: %w", errAuth)
		}
	}

	if errMail := client.Mail(from); errMail != nil {
		return fmt.Errorf("mail: sender: %w", errMail)
	}
	if errRcpt := client.Rcpt(to); errRcpt != nil {
		return fmt.Errorf("mail: recipient: %w", errRcpt)
	}

	w, errData := client.Data()
	if errData != nil {
		return fmt.Errorf("mail: data: %w", errData)
	}
	if _, errWrite := w.Write(msg); errWrite != nil {
		return fmt.Errorf("mail: write: %w", errWrite)
	}
	if errClose := w.Close(); errClose != nil {
		return fmt.Errorf("mail: close: %w", errClose)
	}
	return nil
}
