package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"

	"github.com/Dosada05/futbol5/config"
	"github.com/google/uuid"
)

// EmailMessage is a single-recipient message with plain text and HTML bodies.
type EmailMessage struct {
	From    mail.Address
	To      mail.Address
	Subject string
	Text    string
	HTML    string
}

// Mailer delivers one message.
type Mailer interface {
	Send(ctx context.Context, msg *EmailMessage) error
}

// Bytes renders the message as multipart/alternative with a fresh Message-ID.
func (m *EmailMessage) Bytes(now time.Time) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	domain := "localhost"
	if at := strings.LastIndex(m.From.Address, "@"); at >= 0 {
		domain = m.From.Address[at+1:]
	}

	fmt.Fprintf(&buf, "From: %s\r\n", m.From.String())
	fmt.Fprintf(&buf, "To: %s\r\n", m.To.String())
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", m.Subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", now.Format(time.RFC1123Z))
	fmt.Fprintf(&buf, "Message-ID: <%s@%s>\r\n", uuid.NewString(), domain)
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", mw.Boundary())

	for _, part := range []struct{ contentType, body string }{
		{"text/plain; charset=UTF-8", m.Text},
		{"text/html; charset=UTF-8", m.HTML},
	} {
		w, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {part.contentType},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create %s part: %w", part.contentType, err)
		}
		qp := quotedprintable.NewWriter(w)
		if _, err := qp.Write([]byte(part.body)); err != nil {
			return nil, fmt.Errorf("failed to write %s part: %w", part.contentType, err)
		}
		if err := qp.Close(); err != nil {
			return nil, fmt.Errorf("failed to flush %s part: %w", part.contentType, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}
	return buf.Bytes(), nil
}

// EmailService sends mail through an SMTP server: implicit TLS on port 465,
// STARTTLS on any other port.
type EmailService struct {
	host string
	port int
	user string
	pass string
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{host: cfg.SMTPHost, port: cfg.SMTPPort, user: cfg.SMTPUser, pass: cfg.SMTPPass}
}

func (s *EmailService) Send(ctx context.Context, msg *EmailMessage) error {
	data, err := msg.Bytes(time.Now())
	if err != nil {
		return err
	}

	client, err := s.dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if s.user != "" {
		if err := client.Auth(smtp.PlainAuth("", s.user, s.pass, s.host)); err != nil {
			return fmt.Errorf("smtp auth failed: %w", err)
		}
	}
	if err := client.Mail(msg.From.Address); err != nil {
		return fmt.Errorf("smtp MAIL FROM failed: %w", err)
	}
	if err := client.Rcpt(msg.To.Address); err != nil {
		return fmt.Errorf("smtp RCPT TO %s failed: %w", msg.To.Address, err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA failed: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close DATA: %w", err)
	}
	return client.Quit()
}

func (s *EmailService) dial(ctx context.Context) (*smtp.Client, error) {
	addr := net.JoinHostPort(s.host, fmt.Sprint(s.port))
	tlsConfig := &tls.Config{ServerName: s.host}

	var (
		conn net.Conn
		err  error
	)
	if s.port == 465 {
		dialer := &tls.Dialer{Config: tlsConfig}
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	} else {
		var dialer net.Dialer
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return nil, fmt.Errorf("smtp connect to %s failed: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}
	if s.port != 465 {
		if err := client.StartTLS(tlsConfig); err != nil {
			client.Close()
			return nil, fmt.Errorf("smtp STARTTLS failed: %w", err)
		}
	}
	return client, nil
}

// LogMailer writes messages to the log instead of sending them.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger.With(slog.String("component", "mailer"))}
}

func (m *LogMailer) Send(ctx context.Context, msg *EmailMessage) error {
	m.logger.InfoContext(ctx, "email",
		slog.String("to", msg.To.String()),
		slog.String("subject", msg.Subject),
		slog.String("body", msg.Text))
	return nil
}
