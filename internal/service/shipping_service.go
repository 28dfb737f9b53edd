package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/pasarlink/pasar-api/internal/models"
	"github.com/pasarlink/pasar-api/internal/repository"
	"github.com/pasarlink/pasar-api/internal/sse"
	"github.com/pasarlink/pasar-api/internal/utils"
	"github.com/pasarlink/pasar-api/pkg/courier"
)

// CourierClient is the courier aggregator surface shipping needs.
type CourierClient interface {
	GetRates(ctx context.Context, req courier.RateRequest) ([]courier.Rate, error)
	CreateShipment(ctx context.Context, req courier.CreateShipmentRequest) (*courier.Shipment, error)
	Track(ctx context.Context, trackingNo string) (*courier.TrackingResult, error)
}

// ShippingService quotes delivery rates, books consignments for paid orders,
// and keeps shipment status in sync via webhook and polling.
type ShippingService struct {
	shipmentRepo   *repository.ShipmentRepository
	orderRepo      *repository.OrderRepository
	client         CourierClient
	notifySvc      *NotificationService
	notifier       sse.Notifier
	pickupPostcode string
	webhookSecret  string
}

// NewShippingService constructs a new ShippingService.
func NewShippingService(
	shipmentRepo *repository.ShipmentRepository,
	orderRepo *repository.OrderRepository,
	client CourierClient,
	notifySvc *NotificationService,
	notifier sse.Notifier,
	pickupPostcode, webhookSecret string,
) *ShippingService {
	return &ShippingService{
		shipmentRepo:   shipmentRepo,
		orderRepo:      orderRepo,
		client:         client,
		notifySvc:      notifySvc,
		notifier:       notifier,
		pickupPostcode: pickupPostcode,
		webhookSecret:  webhookSecret,
	}
}

// GetRates quotes couriers for a destination postcode and parcel weight.
func (s *ShippingService) GetRates(ctx context.Context, deliveryPostcode string, weightKG decimal.Decimal) ([]courier.Rate, error) {
	return s.client.GetRates(ctx, courier.RateRequest{
		PickupPostcode:   s.pickupPostcode,
		DeliveryPostcode: deliveryPostcode,
		WeightKG:         weightKG,
	})
}

// BookShipment books a consignment for a paid order and moves the order to
// shipped. Admin triggers this once the parcel is packed.
func (s *ShippingService) BookShipment(ctx context.Context, orderNo string, courierCode, deliveryPostcode string, weightKG decimal.Decimal) (*models.Shipment, error) {
	order, err := s.orderRepo.GetByOrderNo(orderNo)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.ErrOrderNotFound
		}
		return nil, err
	}
	if order.Status != models.OrderPaid {
		return nil, utils.ErrOrderNotPayable
	}

	booked, err := s.client.CreateShipment(ctx, courier.CreateShipmentRequest{
		CourierCode:      courierCode,
		ReceiverName:     order.Name,
		ReceiverPhone:    order.Phone,
		ReceiverAddress:  order.ShippingAddress,
		DeliveryPostcode: deliveryPostcode,
		WeightKG:         weightKG,
		Reference:        order.OrderNo,
	})
	if err != nil {
		return nil, err
	}

	shipment := &models.Shipment{
		OrderID:     order.ID,
		CourierCode: booked.CourierCode,
		ServiceName: booked.ServiceName,
		TrackingNo:  booked.TrackingNo,
		Fee:         booked.Price,
		Status:      models.ShipmentBooked,
	}
	if err := s.shipmentRepo.Create(shipment); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateStatus(order.ID, models.OrderShipped); err != nil {
		return nil, err
	}
	order.Status = models.OrderShipped

	s.notifySvc.EnqueueShipmentUpdate(order, shipment)
	s.notifier.NotifyShipmentUpdated(order.OrderNo, shipment)

	log.Info().
		Str("order_no", order.OrderNo).
		Str("tracking_no", shipment.TrackingNo).
		Str("courier", shipment.CourierCode).
		Msg("Shipment booked")
	return shipment, nil
}

// GetTracking returns the stored shipment plus live checkpoint history.
func (s *ShippingService) GetTracking(ctx context.Context, orderNo string) (*models.Shipment, *courier.TrackingResult, error) {
	order, err := s.orderRepo.GetByOrderNo(orderNo)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, utils.ErrOrderNotFound
		}
		return nil, nil, err
	}
	shipment, err := s.shipmentRepo.GetByOrderID(order.ID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, utils.ErrShipmentNotFound
		}
		return nil, nil, err
	}

	tracking, err := s.client.Track(ctx, shipment.TrackingNo)
	if err != nil {
		// Courier downtime should not hide what we already know.
		log.Warn().Err(err).Str("tracking_no", shipment.TrackingNo).Msg("Courier tracking lookup failed")
		return shipment, nil, nil
	}
	return shipment, tracking, nil
}

// VerifyWebhook checks the courier webhook body signature.
func (s *ShippingService) VerifyWebhook(body []byte, signature string) bool {
	return utils.VerifySignature(body, signature, s.webhookSecret)
}

// ApplyTrackingUpdate records a status change for a tracking number, from
// either the webhook or the polling worker.
func (s *ShippingService) ApplyTrackingUpdate(trackingNo string, status models.ShipmentStatus) error {
	shipment, err := s.shipmentRepo.GetByTrackingNo(trackingNo)
	if err != nil {
		if err == sql.ErrNoRows {
			return utils.ErrShipmentNotFound
		}
		return err
	}
	if shipment.Status == status {
		return nil
	}

	if err := s.shipmentRepo.UpdateStatus(shipment.ID, status); err != nil {
		return err
	}
	shipment.Status = status

	order, err := s.orderRepo.GetByID(shipment.OrderID)
	if err != nil {
		return err
	}
	if status == models.ShipmentDelivered {
		if err := s.orderRepo.UpdateStatus(order.ID, models.OrderDelivered); err != nil {
			return err
		}
		order.Status = models.OrderDelivered
	}

	s.notifySvc.EnqueueShipmentUpdate(order, shipment)
	s.notifier.NotifyShipmentUpdated(order.OrderNo, shipment)
	return nil
}

// RefreshStale polls the courier for undelivered shipments that have not
// been checked recently. Returns how many were refreshed.
func (s *ShippingService) RefreshStale(ctx context.Context, staleAfter time.Duration, limit int) (int, error) {
	cutoff := time.Now().Add(-staleAfter)
	shipments, err := s.shipmentRepo.GetStaleUndelivered(cutoff, limit)
	if err != nil {
		return 0, err
	}

	for _, shipment := range shipments {
		if err := s.shipmentRepo.TouchChecked(shipment.ID, time.Now()); err != nil {
			log.Error().Err(err).Int("shipment_id", shipment.ID).Msg("Failed to stamp shipment check")
		}

		tracking, err := s.client.Track(ctx, shipment.TrackingNo)
		if err != nil {
			log.Warn().Err(err).Str("tracking_no", shipment.TrackingNo).Msg("Tracking poll failed")
			continue
		}
		status := mapCourierStatus(tracking.Status)
		if status == "" || status == shipment.Status {
			continue
		}
		if err := s.ApplyTrackingUpdate(shipment.TrackingNo, status); err != nil {
			log.Error().Err(err).Str("tracking_no", shipment.TrackingNo).Msg("Failed to apply tracking update")
		}
	}
	return len(shipments), nil
}

// mapCourierStatus translates the courier's status strings to ours. Unknown
// statuses map to empty and are ignored.
func mapCourierStatus(raw string) models.ShipmentStatus {
	switch raw {
	case "pending", "booked":
		return models.ShipmentBooked
	case "picked_up", "collected":
		return models.ShipmentPickedUp
	case "in_transit", "on_the_way", "out_for_delivery":
		return models.ShipmentInTransit
	case "delivered", "completed":
		return models.ShipmentDelivered
	case "failed", "returned", "cancelled":
		return models.ShipmentFailed
	default:
		return ""
	}
}
