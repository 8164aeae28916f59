package mailer_test

import (
	"testing"

	"github.com/voyago/travelbook/internal/mailer"
)

func TestNewSMTPMailer(t *testing.T) {
	m := mailer.NewSMTPMailer(" smtp.example.com ", 465, " noreply@example.com ", " user ", "pass", true)

	if m.Host != "smtp.example.com" {
		t.Errorf("host = %q, want trimmed", m.Host)
	}
	if m.From != "noreply@example.com" {
		t.Errorf("from = %q, want trimmed", m.From)
	}
	if m.User != "user" {
		t.Errorf("user = %q, want trimmed", m.User)
	}
	if !m.UseTLS {
		t.Error("UseTLS not carried through")
	}

	dev := mailer.NewSMTPMailer("localhost", 1025, "dev@local", "", "", false)
	if dev.UseTLS {
		t.Error("dev mailer should not request TLS")
	}
}

func TestSendNotificationEmail_EmptyRecipient(t *testing.T) {
	m := mailer.NewSMTPMailer("localhost", 1025, "dev@local", "", "", false)
	if err := m.SendNotificationEmail("   ", "alice", "hello"); err == nil {
		t.Fatal("empty recipient accepted")
	}
}
