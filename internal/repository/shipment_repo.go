package repository

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pasarlink/pasar-api/internal/models"
)

// ShipmentRepository handles data access for courier shipments.
type ShipmentRepository struct {
	db *sqlx.DB
}

// NewShipmentRepository creates a new ShipmentRepository.
func NewShipmentRepository(db *sqlx.DB) *ShipmentRepository {
	return &ShipmentRepository{db: db}
}

// Create creates a shipment for an order.
func (r *ShipmentRepository) Create(shipment *models.Shipment) error {
	const q = `
		INSERT INTO shipments (order_id, courier_code, service_name, tracking_no, fee, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowx(q,
		shipment.OrderID,
		shipment.CourierCode,
		shipment.ServiceName,
		shipment.TrackingNo,
		shipment.Fee,
		shipment.Status,
	).Scan(&shipment.ID, &shipment.CreatedAt, &shipment.UpdatedAt)
}

// GetByOrderID returns the shipment for an order.
func (r *ShipmentRepository) GetByOrderID(orderID int) (*models.Shipment, error) {
	var s models.Shipment
	if err := r.db.Get(&s, `SELECT * FROM shipments WHERE order_id = $1 LIMIT 1`, orderID); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByTrackingNo returns a shipment by its courier tracking number.
func (r *ShipmentRepository) GetByTrackingNo(trackingNo string) (*models.Shipment, error) {
	var s models.Shipment
	if err := r.db.Get(&s, `SELECT * FROM shipments WHERE tracking_no = $1 LIMIT 1`, trackingNo); err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateStatus sets the shipment status and stamps delivered_at when the
// status is delivered.
func (r *ShipmentRepository) UpdateStatus(shipmentID int, status models.ShipmentStatus) error {
	const q = `
		UPDATE shipments
		SET status = $2,
			delivered_at = CASE WHEN $2 = 'delivered' THEN NOW() ELSE delivered_at END,
			updated_at = NOW()
		WHERE id = $1`
	_, err := r.db.Exec(q, shipmentID, status)
	return err
}

// TouchChecked records that the tracking worker polled this shipment.
func (r *ShipmentRepository) TouchChecked(shipmentID int, at time.Time) error {
	_, err := r.db.Exec(
		`UPDATE shipments SET last_checked_at = $2, updated_at = NOW() WHERE id = $1`,
		shipmentID, at,
	)
	return err
}

// GetStaleUndelivered returns undelivered shipments not polled since the
// cutoff. The tracking worker processes these in batches.
func (r *ShipmentRepository) GetStaleUndelivered(cutoff time.Time, limit int) ([]models.Shipment, error) {
	const q = `
		SELECT * FROM shipments
		WHERE status NOT IN ('delivered', 'failed')
		AND (last_checked_at IS NULL OR last_checked_at < $1)
		ORDER BY last_checked_at NULLS FIRST
		LIMIT $2`

	var shipments []models.Shipment
	if err := r.db.Select(&shipments, q, cutoff, limit); err != nil {
		return nil, err
	}
	return shipments, nil
}
