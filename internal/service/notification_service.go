package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pasarlink/pasar-api/internal/models"
	"github.com/pasarlink/pasar-api/internal/repository"
)

// EmailSender delivers one email message.
type EmailSender interface {
	Send(to, subject, body string) error
}

// TelegramSender posts one message to a Telegram chat.
type TelegramSender interface {
	SendMessage(ctx context.Context, chatID, text string) error
}

// maxNotifyAttempts caps delivery retries before a row moves to failed.
const maxNotifyAttempts = 5

// NotificationService enqueues outbound messages and dispatches pending ones.
// Enqueueing is done inline by other services; delivery happens in the
// background worker so a slow SMTP server never blocks a request.
type NotificationService struct {
	notificationRepo *repository.NotificationRepository
	mailer           EmailSender
	telegram         TelegramSender
	adminChatID      string
}

// NewNotificationService constructs a new NotificationService.
func NewNotificationService(
	notificationRepo *repository.NotificationRepository,
	mailer EmailSender,
	telegram TelegramSender,
	adminChatID string,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		mailer:           mailer,
		telegram:         telegram,
		adminChatID:      adminChatID,
	}
}

// EnqueueOrderConfirmation queues the customer's payment confirmation email
// and a Telegram alert to the admin channel.
func (s *NotificationService) EnqueueOrderConfirmation(order *models.Order, receipt *models.Receipt) {
	subject, body := renderOrderConfirmation(order, receipt)
	s.enqueue(&models.Notification{
		UserID:    order.UserID,
		Channel:   models.ChannelEmail,
		Recipient: order.Email,
		Subject:   subject,
		Body:      body,
	})
	s.enqueue(&models.Notification{
		Channel:   models.ChannelTelegram,
		Recipient: s.adminChatID,
		Body:      fmt.Sprintf("Order %s paid: RM %s (%s)", order.OrderNo, order.Total.StringFixed(2), order.Email),
	})
}

// EnqueueMembershipUnlocked queues the congratulations email when a customer
// crosses the membership threshold.
func (s *NotificationService) EnqueueMembershipUnlocked(user *models.User) {
	s.enqueue(&models.Notification{
		UserID:    &user.ID,
		Channel:   models.ChannelEmail,
		Recipient: user.Email,
		Subject:   "Welcome to PasarLink membership!",
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour qualifying purchases reached the membership threshold. "+
				"Member prices now apply automatically to every order.\n\nTerima kasih,\nPasarLink",
			user.Name,
		),
	})
}

// EnqueueShipmentUpdate queues a shipment status email to the customer.
func (s *NotificationService) EnqueueShipmentUpdate(order *models.Order, shipment *models.Shipment) {
	s.enqueue(&models.Notification{
		UserID:    order.UserID,
		Channel:   models.ChannelEmail,
		Recipient: order.Email,
		Subject:   fmt.Sprintf("Order %s shipping update", order.OrderNo),
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour order %s is now %s.\nTracking number: %s\n\nTerima kasih,\nPasarLink",
			order.Name, order.OrderNo, shipment.Status, shipment.TrackingNo,
		),
	})
}

// EnqueueChatAlert pings the admin Telegram channel about a new customer
// message so support can respond quickly.
func (s *NotificationService) EnqueueChatAlert(msg *models.ChatMessage) {
	body := msg.Body
	if len(body) > 200 {
		body = body[:200] + "…"
	}
	s.enqueue(&models.Notification{
		Channel:   models.ChannelTelegram,
		Recipient: s.adminChatID,
		Body:      fmt.Sprintf("New chat message (%s):\n%s", msg.ConversationID, body),
	})
}

// enqueue inserts the row, logging instead of failing: losing a notification
// must never fail the request that triggered it.
func (s *NotificationService) enqueue(n *models.Notification) {
	if n.Recipient == "" {
		return
	}
	if err := s.notificationRepo.Enqueue(n); err != nil {
		log.Error().Err(err).Str("channel", string(n.Channel)).Msg("Failed to enqueue notification")
	}
}

// DispatchPending delivers up to limit pending notifications. Called by the
// background worker on every tick; returns how many were processed.
func (s *NotificationService) DispatchPending(ctx context.Context, limit int) (int, error) {
	pending, err := s.notificationRepo.GetPending(limit, maxNotifyAttempts)
	if err != nil {
		return 0, err
	}

	for _, n := range pending {
		if err := s.deliver(ctx, &n); err != nil {
			log.Warn().Err(err).Int("notification_id", n.ID).Msg("Notification delivery failed")
			if markErr := s.notificationRepo.MarkFailed(n.ID, err.Error(), maxNotifyAttempts); markErr != nil {
				log.Error().Err(markErr).Int("notification_id", n.ID).Msg("Failed to record delivery failure")
			}
			continue
		}
		if err := s.notificationRepo.MarkSent(n.ID, time.Now()); err != nil {
			log.Error().Err(err).Int("notification_id", n.ID).Msg("Failed to mark notification sent")
		}
	}
	return len(pending), nil
}

func (s *NotificationService) deliver(ctx context.Context, n *models.Notification) error {
	switch n.Channel {
	case models.ChannelEmail:
		return s.mailer.Send(n.Recipient, n.Subject, n.Body)
	case models.ChannelTelegram:
		return s.telegram.SendMessage(ctx, n.Recipient, n.Body)
	default:
		return fmt.Errorf("unknown channel: %s", n.Channel)
	}
}

// renderOrderConfirmation builds the confirmation email from the paid order.
func renderOrderConfirmation(order *models.Order, receipt *models.Receipt) (subject, body string) {
	subject = fmt.Sprintf("Order %s confirmed", order.OrderNo)

	lines := fmt.Sprintf("Hi %s,\n\nThank you for your order!\n\n", order.Name)
	for _, item := range order.Items {
		lines += fmt.Sprintf("  %dx %s — RM %s\n", item.Quantity, item.ProductName, item.LineTotal.StringFixed(2))
	}
	lines += fmt.Sprintf("\nSubtotal: RM %s\nShipping: RM %s\nTotal: RM %s\n",
		order.Subtotal.StringFixed(2), order.ShippingFee.StringFixed(2), order.Total.StringFixed(2))
	if receipt != nil {
		lines += fmt.Sprintf("\nReceipt: %s\n", receipt.ReceiptNo)
		if receipt.FooterText != "" {
			lines += receipt.FooterText + "\n"
		}
	}
	lines += "\nTerima kasih,\nPasarLink"
	return subject, lines
}
