package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/voyago/travelbook/internal/mailer"
	"github.com/voyago/travelbook/pkg/config"
	"github.com/voyago/travelbook/pkg/events"
	"github.com/voyago/travelbook/pkg/logger"
)

// The notifier delivers stored notifications by email. The durable inbox row
// is written by the API inside the domain transaction; this worker only adds
// the outbound email on top, so a crash here loses no data.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	eventBus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	mail := buildMailer(cfg)

	err = eventBus.QueueSubscribe(events.NotificationCreated, "notifier", func(msg *events.Message) {
		var event events.NotificationCreatedEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			logger.Error("Failed to decode notification event", "error", err)
			return
		}
		if event.UserEmail == "" {
			logger.Warn("Notification event without email", "notification_id", event.NotificationID)
			return
		}

		if err := mail.SendNotificationEmail(event.UserEmail, event.UserName, event.Message); err != nil {
			logger.Error("Failed to send notification email",
				"error", err,
				"notification_id", event.NotificationID,
				"user_id", event.UserID,
			)
			return
		}
		logger.Info("Notification email sent",
			"notification_id", event.NotificationID,
			"user_id", event.UserID,
		)
	})
	if err != nil {
		logger.Error("Failed to subscribe", "error", err, "subject", events.NotificationCreated)
		os.Exit(1)
	}

	logger.Info("Notifier running", "subject", events.NotificationCreated)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down notifier...")
}

func buildMailer(cfg *config.Config) mailer.Service {
	if cfg.Email.DevMode {
		return mailer.NewDevMailer()
	}
	if cfg.Email.MailerSendKey != "" {
		m, err := mailer.NewMailerSendMailer(cfg.Email.MailerSendKey, "Travelbook", cfg.Email.SMTPFrom)
		if err == nil {
			return m
		}
		logger.Warn("MailerSend unavailable, falling back to SMTP", "error", err)
	}
	return mailer.NewSMTPMailer(cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.SMTPFrom, cfg.Email.SMTPUser, cfg.Email.SMTPPass, cfg.Email.SMTPUseTLS)
}
