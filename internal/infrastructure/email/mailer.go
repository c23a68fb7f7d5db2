// Package email delivers rendered reports over SMTP.
package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"

	"github.com/Tomas-vilte/MateRisk/internal/config"
	domainErrors "github.com/Tomas-vilte/MateRisk/internal/domain/errors"
	"github.com/Tomas-vilte/MateRisk/internal/domain/models"
	"github.com/Tomas-vilte/MateRisk/internal/domain/ports"
	"github.com/Tomas-vilte/MateRisk/internal/logger"
	"github.com/jaytaylor/html2text"
)

var _ ports.Mailer = (*Mailer)(nil)

const implicitTLSPort = "465"

// sendFunc delivers an already built message. Tests replace it.
type sendFunc func(ctx context.Context, addr string, auth smtp.Auth, from string, to []string, msg []byte) error

type Mailer struct {
	cfg  config.EmailConfig
	send sendFunc
	now  func() time.Time
}

func NewMailer(cfg config.EmailConfig) *Mailer {
	m := &Mailer{cfg: cfg, now: time.Now}
	if cfg.Port == implicitTLSPort {
		m.send = m.sendImplicitTLS
	} else {
		m.send = m.sendStartTLS
	}
	return m
}

func (m *Mailer) configured() bool {
	return m.cfg.Host != "" && m.cfg.Port != "" && m.cfg.User != "" && m.cfg.Password != ""
}

// Send delivers msg. Without SMTP settings it only logs and returns nil.
func (m *Mailer) Send(ctx context.Context, msg models.EmailMessage) error {
	to := msg.To
	if len(to) == 0 && m.cfg.Recipient != "" {
		to = []string{m.cfg.Recipient}
	}
	if !m.configured() || len(to) == 0 {
		logger.Info(ctx, "smtp not configured, report not sent", "subject", msg.Subject)
		return nil
	}

	from := msg.From
	if from == "" {
		from = m.cfg.From
	}
	if from == "" {
		from = m.cfg.User
	}

	body, err := buildMessage(from, to, msg.Subject, msg.HTML, m.now())
	if err != nil {
		return domainErrors.NewAppError(domainErrors.TypeEmail, "error building report email", err)
	}

	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)

	logger.Debug(ctx, "sending report email", "host", m.cfg.Host, "port", m.cfg.Port, "size", len(body))
	if err := m.send(ctx, addr, auth, from, to, body); err != nil {
		return domainErrors.NewAppError(domainErrors.TypeEmail, "error sending report email", err).
			WithContext("host", m.cfg.Host)
	}
	logger.Info(ctx, "report email sent", "count", len(to))
	return nil
}

func (m *Mailer) sendStartTLS(ctx context.Context, addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	c, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer func() {
		_ = c.Close()
	}()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
			return err
		}
	}
	return deliver(c, auth, from, to, msg)
}

func (m *Mailer) sendImplicitTLS(ctx context.Context, addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	d := tls.Dialer{Config: &tls.Config{ServerName: m.cfg.Host}}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	c, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer func() {
		_ = c.Close()
	}()
	return deliver(c, auth, from, to, msg)
}

func deliver(c *smtp.Client, auth smtp.Auth, from string, to []string, msg []byte) error {
	if err := c.Auth(auth); err != nil {
		return err
	}
	if err := c.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

// buildMessage renders a multipart/alternative message with a plain-text part
// derived from the HTML and the HTML part itself.
func buildMessage(from string, to []string, subject, html string, date time.Time) ([]byte, error) {
	plain, err := html2text.FromString(html, html2text.Options{PrettyTables: false})
	if err != nil {
		return nil, fmt.Errorf("error converting html to text: %w", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	headers := []struct{ key, value string }{
		{"From", from},
		{"To", strings.Join(to, ", ")},
		{"Subject", mime.QEncoding.Encode("utf-8", subject)},
		{"Date", date.Format(time.RFC1123Z)},
		{"MIME-Version", "1.0"},
		{"Content-Type", fmt.Sprintf("multipart/alternative; boundary=%q", mw.Boundary())},
	}

	var msg bytes.Buffer
	for _, h := range headers {
		fmt.Fprintf(&msg, "%s: %s\r\n", h.key, h.value)
	}
	msg.WriteString("\r\n")

	for _, part := range []struct{ contentType, content string }{
		{"text/plain; charset=utf-8", plain},
		{"text/html; charset=utf-8", html},
	} {
		w, err := mw.CreatePart(textproto.MIMEHeader{"Content-Type": {part.contentType}})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(part.content)); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	msg.Write(body.Bytes())
	return msg.Bytes(), nil
}
