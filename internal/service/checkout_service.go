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
	"github.com/pasarlink/pasar-api/pkg/gateway"
)

// BillClient is the payment gateway surface the checkout flow needs.
type BillClient interface {
	CreateBill(ctx context.Context, req gateway.CreateBillRequest) (*gateway.Bill, error)
	VerifyCallback(p gateway.CallbackPayload) bool
}

// CheckoutService turns carts into orders, creates payment bills, and
// finalizes orders when the gateway confirms payment.
type CheckoutService struct {
	orderRepo    *repository.OrderRepository
	productRepo  *repository.ProductRepository
	userRepo     *repository.UserRepository
	settingsRepo *repository.SettingsRepository
	cartSvc      *CartService
	bills        BillClient
	notifySvc    *NotificationService
	notifier     sse.Notifier
	callbackURL  string
	redirectURL  string
}

// NewCheckoutService constructs a new CheckoutService.
func NewCheckoutService(
	orderRepo *repository.OrderRepository,
	productRepo *repository.ProductRepository,
	userRepo *repository.UserRepository,
	settingsRepo *repository.SettingsRepository,
	cartSvc *CartService,
	bills BillClient,
	notifySvc *NotificationService,
	notifier sse.Notifier,
	callbackURL, redirectURL string,
) *CheckoutService {
	return &CheckoutService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		userRepo:     userRepo,
		settingsRepo: settingsRepo,
		cartSvc:      cartSvc,
		bills:        bills,
		notifySvc:    notifySvc,
		notifier:     notifier,
		callbackURL:  callbackURL,
		redirectURL:  redirectURL,
	}
}

// CheckoutInput is the customer-provided checkout form.
type CheckoutInput struct {
	Name            string          `json:"name" binding:"required"`
	Email           string          `json:"email" binding:"required,email"`
	Phone           string          `json:"phone" binding:"required"`
	ShippingAddress string          `json:"shippingAddress" binding:"required"`
	ShippingFee     decimal.Decimal `json:"shippingFee"`
}

// CheckoutResult is returned to the storefront after an order is placed.
type CheckoutResult struct {
	Order      *models.Order `json:"order"`
	PaymentURL string        `json:"paymentUrl"`
}

// Checkout evaluates the cart one final time, freezes the result into an
// order, reserves stock, and creates the payment bill. The cart is deleted
// only after everything succeeded.
func (s *CheckoutService) Checkout(ctx context.Context, cart *models.Cart, user *models.User, input CheckoutInput) (*CheckoutResult, error) {
	if len(cart.Items) == 0 {
		return nil, utils.ErrCartEmpty
	}

	isMember := user != nil && user.IsMember
	summary, err := s.cartSvc.Evaluate(ctx, cart, isMember)
	if err != nil {
		return nil, err
	}
	if len(summary.Lines) == 0 {
		return nil, utils.ErrCartEmpty
	}

	order := &models.Order{
		OrderNo:         utils.GenerateOrderNo(),
		Email:           input.Email,
		Name:            input.Name,
		Phone:           input.Phone,
		ShippingAddress: input.ShippingAddress,
		Status:          models.OrderPending,
		Subtotal:        summary.ApplicableSubtotal,
		ShippingFee:     input.ShippingFee,
		Total:           summary.ApplicableSubtotal.Add(input.ShippingFee),
		QualifyingTotal: summary.QualifyingTotal,
	}
	if user != nil {
		order.UserID = &user.ID
	}
	for _, line := range summary.Lines {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:    line.ProductID,
			ProductName:  line.Name,
			Quantity:     line.Quantity,
			UnitPrice:    line.UnitPrice,
			PriceKind:    line.PriceKind,
			LineTotal:    line.LineTotal,
			IsQualifying: line.Qualifies,
		})
	}

	// Bill first: a gateway failure aborts checkout before anything is
	// written. An orphaned bill for a failed insert is harmless.
	bill, err := s.bills.CreateBill(ctx, gateway.CreateBillRequest{
		Email:       order.Email,
		Name:        order.Name,
		Amount:      order.Total.Mul(decimal.NewFromInt(100)).IntPart(),
		Description: "PasarLink order " + order.OrderNo,
		CallbackURL: s.callbackURL,
		RedirectURL: s.redirectURL,
		Reference1:  order.OrderNo,
	})
	if err != nil {
		return nil, err
	}
	order.PaymentBillID = &bill.ID

	tx, err := s.orderRepo.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	for _, item := range order.Items {
		if err := s.productRepo.DecrementStock(tx, item.ProductID, item.Quantity); err != nil {
			if err == sql.ErrNoRows {
				return nil, utils.ErrOutOfStock
			}
			return nil, err
		}
	}
	if err := s.orderRepo.Create(tx, order); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	if err := s.cartSvc.Delete(ctx, cart); err != nil {
		log.Warn().Err(err).Str("order_no", order.OrderNo).Msg("Failed to delete cart after checkout")
	}

	return &CheckoutResult{Order: order, PaymentURL: bill.URL}, nil
}

// HandlePaymentCallback processes the gateway webhook. Replays are detected
// through the pending→paid transition and acknowledged without side effects.
func (s *CheckoutService) HandlePaymentCallback(ctx context.Context, payload gateway.CallbackPayload) error {
	if !s.bills.VerifyCallback(payload) {
		return utils.ErrInvalidSignature
	}
	if payload.Paid != "true" {
		return nil
	}

	order, err := s.orderRepo.GetByBillID(payload.BillID)
	if err != nil {
		if err == sql.ErrNoRows {
			return utils.ErrOrderNotFound
		}
		return err
	}

	tx, err := s.orderRepo.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	affected, err := s.orderRepo.MarkPaid(tx, order.ID, time.Now())
	if err != nil {
		return err
	}
	if affected == 0 {
		// Already finalized by an earlier delivery of this webhook.
		return nil
	}
	order.Status = models.OrderPaid

	footer, err := s.settingsRepo.Get(repository.SettingReceiptFooter, "")
	if err != nil {
		return err
	}
	receipt := &models.Receipt{
		OrderID:    order.ID,
		ReceiptNo:  utils.GenerateReceiptNo(),
		FooterText: footer,
		IssuedAt:   time.Now(),
	}
	if err := s.orderRepo.CreateReceipt(tx, receipt); err != nil {
		return err
	}

	var unlocked *models.User
	if order.UserID != nil && order.QualifyingTotal.IsPositive() {
		updated, err := s.userRepo.AccrueMembership(tx, *order.UserID, order.QualifyingTotal)
		if err != nil {
			return err
		}
		cfg, err := s.settingsRepo.GetMembershipConfig()
		if err != nil {
			return err
		}
		if !updated.IsMember && updated.MembershipTotal.GreaterThanOrEqual(cfg.Threshold) {
			if err := s.userRepo.PromoteToMember(tx, updated.ID); err != nil {
				return err
			}
			unlocked = updated
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.notifySvc.EnqueueOrderConfirmation(order, receipt)
	if unlocked != nil {
		s.notifySvc.EnqueueMembershipUnlocked(unlocked)
	}
	s.notifier.NotifyOrderPaid(order)

	log.Info().
		Str("order_no", order.OrderNo).
		Str("total", order.Total.StringFixed(2)).
		Bool("membership_unlocked", unlocked != nil).
		Msg("Order paid")
	return nil
}

// ExpireStalePending cancels unpaid orders older than expireAfter and
// restores their reserved stock. Returns how many orders were cancelled.
func (s *CheckoutService) ExpireStalePending(expireAfter time.Duration, limit int) (int, error) {
	cutoff := time.Now().Add(-expireAfter)
	stale, err := s.orderRepo.GetStalePending(cutoff, limit)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, order := range stale {
		tx, err := s.orderRepo.Begin()
		if err != nil {
			return cancelled, err
		}
		affected, err := s.orderRepo.Cancel(tx, order.ID)
		if err != nil {
			tx.Rollback()
			return cancelled, err
		}
		if affected == 0 {
			// Paid between the select and the update; leave it alone.
			tx.Rollback()
			continue
		}
		for _, item := range order.Items {
			if err := s.productRepo.RestoreStock(tx, item.ProductID, item.Quantity); err != nil {
				tx.Rollback()
				return cancelled, err
			}
		}
		if err := tx.Commit(); err != nil {
			return cancelled, err
		}
		cancelled++
		log.Info().Str("order_no", order.OrderNo).Msg("Expired unpaid order")
	}
	return cancelled, nil
}

// GetOrder returns an order with its receipt, when issued.
func (s *CheckoutService) GetOrder(orderNo string) (*models.Order, *models.Receipt, error) {
	order, err := s.orderRepo.GetByOrderNo(orderNo)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, utils.ErrOrderNotFound
		}
		return nil, nil, err
	}
	receipt, err := s.orderRepo.GetReceiptByOrderID(order.ID)
	if err != nil && err != sql.ErrNoRows {
		return nil, nil, err
	}
	return order, receipt, nil
}

// ListUserOrders returns a customer's order history.
func (s *CheckoutService) ListUserOrders(userID int) ([]models.Order, error) {
	return s.orderRepo.ListByUser(userID)
}

// GetAdminOrders returns orders for the admin panel.
func (s *CheckoutService) GetAdminOrders(filter *repository.AdminOrderFilter) (*repository.AdminOrderResult, error) {
	return s.orderRepo.ListAdmin(filter)
}

// GetOrderStats returns dashboard statistics since the given time.
func (s *CheckoutService) GetOrderStats(since time.Time) (*repository.OrderStats, error) {
	return s.orderRepo.GetStats(since)
}
