package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pasarlink/pasar-api/internal/service"
)

// expiryBatchSize caps orders expired per tick.
const expiryBatchSize = 100

// OrderExpiryWorker cancels unpaid orders that outlived their payment window
// and returns their reserved stock.
type OrderExpiryWorker struct {
	checkoutSvc *service.CheckoutService
	interval    time.Duration
	expireAfter time.Duration
}

// NewOrderExpiryWorker constructs an OrderExpiryWorker.
func NewOrderExpiryWorker(checkoutSvc *service.CheckoutService, interval, expireAfter time.Duration) *OrderExpiryWorker {
	return &OrderExpiryWorker{
		checkoutSvc: checkoutSvc,
		interval:    interval,
		expireAfter: expireAfter,
	}
}

// Start begins the expiry loop and listens for context cancellation.
func (w *OrderExpiryWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting order expiry worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run()
		case <-ctx.Done():
			log.Info().Msg("Order expiry worker stopped")
			return
		}
	}
}

func (w *OrderExpiryWorker) run() {
	n, err := w.checkoutSvc.ExpireStalePending(w.expireAfter, expiryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("Failed to expire stale orders")
		return
	}
	if n > 0 {
		log.Info().Int("count", n).Msg("Expired unpaid orders")
	}
}
