package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pasarlink/pasar-api/internal/service"
)

// notifyBatchSize caps notifications dispatched per tick.
const notifyBatchSize = 50

// NotificationWorker drains the pending notification queue on a fixed interval.
type NotificationWorker struct {
	notifySvc *service.NotificationService
	interval  time.Duration
}

// NewNotificationWorker constructs a NotificationWorker.
func NewNotificationWorker(notifySvc *service.NotificationService, interval time.Duration) *NotificationWorker {
	return &NotificationWorker{
		notifySvc: notifySvc,
		interval:  interval,
	}
}

// Start begins the dispatch loop and listens for context cancellation.
func (w *NotificationWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting notification worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Notification worker stopped")
			return
		}
	}
}

func (w *NotificationWorker) run(ctx context.Context) {
	n, err := w.notifySvc.DispatchPending(ctx, notifyBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("Failed to dispatch notifications")
		return
	}
	if n > 0 {
		log.Debug().Int("count", n).Msg("Dispatched notifications")
	}
}
