// Package mailer sends complaint lifecycle notifications over SMTP.
// Delivery is best-effort: failures are logged and counted, never surfaced
// to the submitting request.
package mailer

import (
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/openseva/grievance/internal/config"
	"github.com/openseva/grievance/internal/domain"
	"github.com/openseva/grievance/internal/logger"
)

// dialTimeout bounds the relay reachability probe.
const dialTimeout = 5 * time.Second

// Recorder counts delivery outcomes. Satisfied by telemetry.Provider.
type Recorder interface {
	RecordEmail(success bool)
}

// Mailer sends notification emails for complaint events.
type Mailer struct {
	cfg      config.SMTPConfig
	logger   logger.Logger
	recorder Recorder
}

// New creates a mailer. A nil recorder disables delivery counting.
func New(cfg config.SMTPConfig, log logger.Logger, recorder Recorder) *Mailer {
	return &Mailer{
		cfg:      cfg,
		logger:   log,
		recorder: recorder,
	}
}

// Enabled reports whether notifications are configured.
func (m *Mailer) Enabled() bool {
	return m.cfg.Host != ""
}

// Ping checks that the configured relay accepts TCP connections.
func (m *Mailer) Ping() error {
	if !m.Enabled() {
		return nil
	}

	conn, err := net.DialTimeout("tcp", m.addr(), dialTimeout)
	if err != nil {
		return fmt.Errorf("mail relay unreachable: %w", err)
	}
	return conn.Close()
}

// SendSubmissionConfirmation notifies the submitter that their complaint
// was registered. Runs asynchronously.
func (m *Mailer) SendSubmissionConfirmation(c *domain.Complaint) {
	subject := fmt.Sprintf("Complaint registered: %s", c.ID)
	body := buildSubmissionBody(c)
	m.sendAsync(c.Email, subject, body)
}

// SendStatusUpdate notifies the submitter that their complaint changed
// status. Runs asynchronously.
func (m *Mailer) SendStatusUpdate(c *domain.Complaint) {
	subject := fmt.Sprintf("Complaint %s is now %s", c.ID, c.Status)
	body := buildStatusBody(c)
	m.sendAsync(c.Email, subject, body)
}

func (m *Mailer) sendAsync(to, subject, body string) {
	if !m.Enabled() {
		return
	}

	go func() {
		err := m.send(to, subject, body)
		if m.recorder != nil {
			m.recorder.RecordEmail(err == nil)
		}
		if err != nil {
			m.logger.Warn("Notification email failed",
				logger.String("to", to),
				logger.String("subject", subject),
				logger.Error(err),
			)
			return
		}
		m.logger.Debug("Notification email sent",
			logger.String("to", to),
			logger.String("subject", subject),
		)
	}()
}

func (m *Mailer) send(to, subject, body string) error {
	msg := buildMessage(m.cfg.From, to, subject, body)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(m.addr(), auth, m.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

func (m *Mailer) addr() string {
	return fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
}

// buildMessage assembles an RFC 5322 plain-text message.
func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return []byte(b.String())
}

func buildSubmissionBody(c *domain.Complaint) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", c.Name)
	b.WriteString("Your complaint has been registered with the grievance portal.\n\n")
	fmt.Fprintf(&b, "Reference:  %s\n", c.ID)
	fmt.Fprintf(&b, "Category:   %s\n", c.Category)
	fmt.Fprintf(&b, "Priority:   %s\n", c.Priority)
	fmt.Fprintf(&b, "Department: %s\n", c.Department)
	if c.IsDuplicate {
		b.WriteString("\nThis complaint appears to match an earlier submission and has been linked to it.\n")
	}
	b.WriteString("\nYou will be notified when its status changes.\n")
	return b.String()
}

func buildStatusBody(c *domain.Complaint) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", c.Name)
	fmt.Fprintf(&b, "The status of your complaint %s has changed to: %s\n\n", c.ID, c.Status)
	fmt.Fprintf(&b, "Category:   %s\n", c.Category)
	fmt.Fprintf(&b, "Department: %s\n", c.Department)
	return b.String()
}
