package mailer

// Service delivers a stored notification to the user's inbox. Delivery is
// best-effort; the durable record lives in the notifications table.
type Service interface {
	SendNotificationEmail(toEmail, toName, message string) error
}
