package mailer_test

import (
	"testing"

	"github.com/openseva/grievance/internal/config"
	"github.com/openseva/grievance/internal/domain"
	"github.com/openseva/grievance/internal/logger"
	"github.com/openseva/grievance/internal/mailer"
)

func TestMailer_Disabled(t *testing.T) {
	m := mailer.New(config.SMTPConfig{}, logger.NewNop(), nil)

	if m.Enabled() {
		t.Error("Enabled() = true with no host configured")
	}

	// No-ops when disabled; must not panic or block.
	m.SendSubmissionConfirmation(&domain.Complaint{Email: "asha@example.org"})
	m.SendStatusUpdate(&domain.Complaint{Email: "asha@example.org"})

	if err := m.Ping(); err != nil {
		t.Errorf("Ping() error = %v when disabled, want nil", err)
	}
}

func TestMailer_Enabled(t *testing.T) {
	m := mailer.New(config.SMTPConfig{Host: "smtp.example.org", Port: 587}, logger.NewNop(), nil)

	if !m.Enabled() {
		t.Error("Enabled() = false with host configured")
	}
}
