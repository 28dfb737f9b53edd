package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pasarlink/pasar-api/internal/service"
)

// shipmentBatchSize caps shipments polled per tick.
const shipmentBatchSize = 25

// ShipmentWorker polls the courier for undelivered shipments the webhook has
// gone quiet on.
type ShipmentWorker struct {
	shippingSvc *service.ShippingService
	interval    time.Duration
	staleAfter  time.Duration
}

// NewShipmentWorker constructs a ShipmentWorker.
func NewShipmentWorker(shippingSvc *service.ShippingService, interval, staleAfter time.Duration) *ShipmentWorker {
	return &ShipmentWorker{
		shippingSvc: shippingSvc,
		interval:    interval,
		staleAfter:  staleAfter,
	}
}

// Start begins the polling loop and listens for context cancellation.
func (w *ShipmentWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting shipment worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Shipment worker stopped")
			return
		}
	}
}

func (w *ShipmentWorker) run(ctx context.Context) {
	n, err := w.shippingSvc.RefreshStale(ctx, w.staleAfter, shipmentBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("Failed to refresh shipments")
		return
	}
	if n > 0 {
		log.Debug().Int("count", n).Msg("Polled shipments")
	}
}
