package repository

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/pasarlink/pasar-api/internal/models"
)

// OrderRepository handles data access for orders, order items, and receipts.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Begin starts a transaction. Checkout and payment finalization span several
// writes and use this to keep them atomic.
func (r *OrderRepository) Begin() (*sqlx.Tx, error) {
	return r.db.Beginx()
}

// Create inserts the order and its items inside the given transaction.
func (r *OrderRepository) Create(tx *sqlx.Tx, order *models.Order) error {
	const q = `
		INSERT INTO orders (order_no, user_id, email, name, phone, shipping_address,
			status, subtotal, shipping_fee, total, qualifying_total, payment_bill_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`

	if err := tx.QueryRowx(q,
		order.OrderNo,
		order.UserID,
		order.Email,
		order.Name,
		order.Phone,
		order.ShippingAddress,
		order.Status,
		order.Subtotal,
		order.ShippingFee,
		order.Total,
		order.QualifyingTotal,
		order.PaymentBillID,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return err
	}

	const itemQ = `
		INSERT INTO order_items (order_id, product_id, product_name, quantity,
			unit_price, price_kind, line_total, is_qualifying)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		if err := tx.QueryRowx(itemQ,
			item.OrderID,
			item.ProductID,
			item.ProductName,
			item.Quantity,
			item.UnitPrice,
			item.PriceKind,
			item.LineTotal,
			item.IsQualifying,
		).Scan(&item.ID); err != nil {
			return err
		}
	}
	return nil
}

// GetByOrderNo returns an order with its items.
func (r *OrderRepository) GetByOrderNo(orderNo string) (*models.Order, error) {
	var o models.Order
	if err := r.db.Get(&o, `SELECT * FROM orders WHERE order_no = $1 LIMIT 1`, orderNo); err != nil {
		return nil, err
	}
	if err := r.loadItems(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByID returns an order with its items.
func (r *OrderRepository) GetByID(id int) (*models.Order, error) {
	var o models.Order
	if err := r.db.Get(&o, `SELECT * FROM orders WHERE id = $1 LIMIT 1`, id); err != nil {
		return nil, err
	}
	if err := r.loadItems(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByBillID returns the order attached to a payment gateway bill.
func (r *OrderRepository) GetByBillID(billID string) (*models.Order, error) {
	var o models.Order
	if err := r.db.Get(&o, `SELECT * FROM orders WHERE payment_bill_id = $1 LIMIT 1`, billID); err != nil {
		return nil, err
	}
	if err := r.loadItems(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

// ListByUser returns a user's orders, newest first.
func (r *OrderRepository) ListByUser(userID int) ([]models.Order, error) {
	var orders []models.Order
	const q = `SELECT * FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	if err := r.db.Select(&orders, q, userID); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) loadItems(o *models.Order) error {
	return r.db.Select(&o.Items, `SELECT * FROM order_items WHERE order_id = $1 ORDER BY id`, o.ID)
}

// MarkPaid transitions a pending order to paid inside the transaction.
// Returns the number of rows affected so callers can detect replayed
// webhooks (already-paid orders update zero rows).
func (r *OrderRepository) MarkPaid(tx *sqlx.Tx, orderID int, paidAt time.Time) (int64, error) {
	res, err := tx.Exec(
		`UPDATE orders SET status = $2, paid_at = $3, updated_at = NOW() WHERE id = $1 AND status = $4`,
		orderID, models.OrderPaid, paidAt, models.OrderPending,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// GetStalePending returns unpaid orders created before the cutoff, items
// loaded, for the expiry worker.
func (r *OrderRepository) GetStalePending(cutoff time.Time, limit int) ([]models.Order, error) {
	var orders []models.Order
	const q = `
		SELECT * FROM orders
		WHERE status = $1 AND created_at < $2
		ORDER BY created_at
		LIMIT $3`
	if err := r.db.Select(&orders, q, models.OrderPending, cutoff, limit); err != nil {
		return nil, err
	}
	for i := range orders {
		if err := r.loadItems(&orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// Cancel transitions a pending order to cancelled inside the transaction.
// Zero rows affected means the order was paid in the meantime.
func (r *OrderRepository) Cancel(tx *sqlx.Tx, orderID int) (int64, error) {
	res, err := tx.Exec(
		`UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1 AND status = $3`,
		orderID, models.OrderCancelled, models.OrderPending,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// UpdateStatus sets the order status.
func (r *OrderRepository) UpdateStatus(orderID int, status models.OrderStatus) error {
	_, err := r.db.Exec(
		`UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`,
		orderID, status,
	)
	return err
}

// CreateReceipt inserts the receipt for a paid order.
func (r *OrderRepository) CreateReceipt(tx *sqlx.Tx, receipt *models.Receipt) error {
	const q = `
		INSERT INTO receipts (order_id, receipt_no, footer_text, issued_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	return tx.QueryRowx(q,
		receipt.OrderID,
		receipt.ReceiptNo,
		receipt.FooterText,
		receipt.IssuedAt,
	).Scan(&receipt.ID)
}

// GetReceiptByOrderID returns the receipt for an order.
func (r *OrderRepository) GetReceiptByOrderID(orderID int) (*models.Receipt, error) {
	var rc models.Receipt
	if err := r.db.Get(&rc, `SELECT * FROM receipts WHERE order_id = $1 LIMIT 1`, orderID); err != nil {
		return nil, err
	}
	return &rc, nil
}

// AdminOrderFilter holds filters for admin order queries.
type AdminOrderFilter struct {
	Status string
	Search string
	From   *time.Time
	To     *time.Time
	Page   int
	Limit  int
}

// AdminOrderResult contains paginated order results for admin.
type AdminOrderResult struct {
	Orders     []models.Order
	TotalItems int
	TotalPages int
	Page       int
	Limit      int
}

// ListAdmin returns orders for the admin panel with filters and pagination.
func (r *OrderRepository) ListAdmin(filter *AdminOrderFilter) (*AdminOrderResult, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	offset := (filter.Page - 1) * filter.Limit

	baseWhere := `WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.Search != "" {
		baseWhere += fmt.Sprintf(" AND (order_no ILIKE $%d OR email ILIKE $%d OR name ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.From != nil {
		baseWhere += fmt.Sprintf(" AND created_at >= $%d", argIdx)
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		baseWhere += fmt.Sprintf(" AND created_at < $%d", argIdx)
		args = append(args, *filter.To)
		argIdx++
	}

	var total int
	if err := r.db.Get(&total, `SELECT COUNT(1) FROM orders `+baseWhere, args...); err != nil {
		return nil, err
	}

	listQuery := fmt.Sprintf(
		`SELECT * FROM orders %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		baseWhere, argIdx, argIdx+1,
	)
	args = append(args, filter.Limit, offset)

	var orders []models.Order
	if err := r.db.Select(&orders, listQuery, args...); err != nil {
		return nil, err
	}

	return &AdminOrderResult{
		Orders:     orders,
		TotalItems: total,
		TotalPages: (total + filter.Limit - 1) / filter.Limit,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// OrderStats summarizes orders for the admin dashboard.
type OrderStats struct {
	TotalOrders   int             `db:"total_orders" json:"totalOrders"`
	PaidOrders    int             `db:"paid_orders" json:"paidOrders"`
	PendingOrders int             `db:"pending_orders" json:"pendingOrders"`
	Revenue       decimal.Decimal `db:"revenue" json:"revenue"`
}

// GetStats returns order counts and paid revenue since the given time.
func (r *OrderRepository) GetStats(since time.Time) (*OrderStats, error) {
	const q = `
		SELECT
			COUNT(1) AS total_orders,
			COUNT(1) FILTER (WHERE status IN ('paid', 'shipped', 'delivered')) AS paid_orders,
			COUNT(1) FILTER (WHERE status = 'pending') AS pending_orders,
			COALESCE(SUM(total) FILTER (WHERE status IN ('paid', 'shipped', 'delivered')), 0) AS revenue
		FROM orders
		WHERE created_at >= $1`

	var stats OrderStats
	if err := r.db.Get(&stats, q, since); err != nil {
		return nil, err
	}
	return &stats, nil
}
