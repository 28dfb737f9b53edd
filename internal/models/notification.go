package models

import "time"

// NotificationChannel selects the delivery transport.
type NotificationChannel string

const (
	ChannelEmail    NotificationChannel = "email"
	ChannelTelegram NotificationChannel = "telegram"
)

// NotificationStatus tracks delivery of a queued notification.
type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
)

// Notification is a queued outbound message (order paid, shipment update,
// membership unlocked, chat reply). The dispatch worker drains pending rows.
type Notification struct {
	ID        int                 `db:"id" json:"id"`
	UserID    *int                `db:"user_id" json:"-"`
	Channel   NotificationChannel `db:"channel" json:"channel"`
	Recipient string              `db:"recipient" json:"recipient"`
	Subject   string              `db:"subject" json:"subject"`
	Body      string              `db:"body" json:"body"`
	Status    NotificationStatus  `db:"status" json:"status"`
	Attempts  int                 `db:"attempts" json:"attempts"`
	LastError *string             `db:"last_error" json:"-"`
	SentAt    *time.Time          `db:"sent_at" json:"sentAt,omitempty"`
	CreatedAt time.Time           `db:"created_at" json:"createdAt"`
}
