package repository

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pasarlink/pasar-api/internal/models"
)

// NotificationRepository handles the outbound notification queue.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Enqueue inserts a pending notification.
func (r *NotificationRepository) Enqueue(n *models.Notification) error {
	const q = `
		INSERT INTO notifications (user_id, channel, recipient, subject, body, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	if n.Status == "" {
		n.Status = models.NotificationPending
	}
	return r.db.QueryRowx(q,
		n.UserID,
		n.Channel,
		n.Recipient,
		n.Subject,
		n.Body,
		n.Status,
	).Scan(&n.ID, &n.CreatedAt)
}

// GetPending returns pending notifications oldest first, skipping rows that
// have already failed too many times.
func (r *NotificationRepository) GetPending(limit, maxAttempts int) ([]models.Notification, error) {
	const q = `
		SELECT * FROM notifications
		WHERE status = 'pending' AND attempts < $2
		ORDER BY created_at
		LIMIT $1`

	var notifications []models.Notification
	if err := r.db.Select(&notifications, q, limit, maxAttempts); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkSent records successful delivery.
func (r *NotificationRepository) MarkSent(id int, at time.Time) error {
	const q = `
		UPDATE notifications
		SET status = 'sent', sent_at = $2, attempts = attempts + 1
		WHERE id = $1`
	_, err := r.db.Exec(q, id, at)
	return err
}

// MarkFailed records a delivery failure. Rows that exhaust maxAttempts move
// to failed; the rest stay pending for the next worker pass.
func (r *NotificationRepository) MarkFailed(id int, cause string, maxAttempts int) error {
	const q = `
		UPDATE notifications
		SET attempts = attempts + 1,
			last_error = $2,
			status = CASE WHEN attempts + 1 >= $3 THEN 'failed' ELSE 'pending' END
		WHERE id = $1`
	_, err := r.db.Exec(q, id, cause, maxAttempts)
	return err
}
