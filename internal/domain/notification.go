package domain

import (
	"time"
	"unicode/utf8"
)

// MaxNotificationMessage caps the stored message length, in characters to
// match the VARCHAR(255) column.
const MaxNotificationMessage = 255

// TruncateMessage caps a message at MaxNotificationMessage characters. The
// cut falls on a rune boundary so the stored message stays valid UTF-8
// regardless of where multi-byte characters land.
func TruncateMessage(message string) string {
	if utf8.RuneCountInString(message) <= MaxNotificationMessage {
		return message
	}
	return string([]rune(message)[:MaxNotificationMessage])
}

// Notification is an append-only, user-owned message created only as a side
// effect of a domain event: a successful wallet payment, a new review on an
// owned destination, or a new recommendation. The read flag is one-way.
type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type MarkReadRequest struct {
	IDs []int64 `json:"ids"`
}
