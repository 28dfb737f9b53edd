package service

import (
	"context"
	"time"

	"github.com/pasarlink/pasar-api/internal/cache"
	"github.com/pasarlink/pasar-api/internal/models"
	"github.com/pasarlink/pasar-api/internal/pricing"
	"github.com/pasarlink/pasar-api/internal/repository"
	"github.com/pasarlink/pasar-api/internal/utils"
)

// CartService manages Redis-backed carts and evaluates them against the
// pricing rules. A cart is addressed by an opaque token; logged-in users own
// at most one cart bound to their id.
type CartService struct {
	cartCache    *cache.CartCache
	productRepo  *repository.ProductRepository
	settingsRepo *repository.SettingsRepository
}

// NewCartService constructs a new CartService.
func NewCartService(
	cartCache *cache.CartCache,
	productRepo *repository.ProductRepository,
	settingsRepo *repository.SettingsRepository,
) *CartService {
	return &CartService{
		cartCache:    cartCache,
		productRepo:  productRepo,
		settingsRepo: settingsRepo,
	}
}

// GetOrCreate loads the cart for the token, falling back to the user's cart
// when the token is unknown, and creating a fresh cart when neither exists.
func (s *CartService) GetOrCreate(ctx context.Context, token string, userID *int) (*models.Cart, error) {
	if token != "" {
		cart, err := s.cartCache.GetByToken(ctx, token)
		if err != nil {
			return nil, err
		}
		if cart != nil {
			return cart, nil
		}
	}
	if userID != nil {
		cart, err := s.cartCache.GetByUser(ctx, *userID)
		if err != nil {
			return nil, err
		}
		if cart != nil {
			return cart, nil
		}
	}

	cart := &models.Cart{
		Token:  utils.GenerateCartToken(),
		UserID: userID,
		Items:  []models.CartItem{},
	}
	if err := s.cartCache.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem adds quantity of a product to the cart. The product must exist,
// be active, and have stock.
func (s *CartService) AddItem(ctx context.Context, cart *models.Cart, productID, quantity int) error {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return utils.ErrProductNotFound
	}
	if !product.IsActive {
		return utils.ErrProductNotFound
	}
	if product.Stock < quantity {
		return utils.ErrOutOfStock
	}
	cart.Upsert(productID, quantity)
	return s.cartCache.Save(ctx, cart)
}

// SetQuantity replaces a line's quantity; zero removes the line.
func (s *CartService) SetQuantity(ctx context.Context, cart *models.Cart, productID, quantity int) error {
	if quantity > 0 {
		product, err := s.productRepo.GetByID(productID)
		if err != nil {
			return utils.ErrProductNotFound
		}
		if product.Stock < quantity {
			return utils.ErrOutOfStock
		}
	}
	cart.SetQuantity(productID, quantity)
	return s.cartCache.Save(ctx, cart)
}

// Clear empties the cart but keeps the token alive.
func (s *CartService) Clear(ctx context.Context, cart *models.Cart) error {
	cart.Items = []models.CartItem{}
	return s.cartCache.Save(ctx, cart)
}

// Merge folds a guest cart into the user's cart at login. Quantities of
// shared products add up. The guest cart is deleted afterwards.
func (s *CartService) Merge(ctx context.Context, guestToken string, userID int) (*models.Cart, error) {
	userCart, err := s.cartCache.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	guestCart, err := s.cartCache.GetByToken(ctx, guestToken)
	if err != nil {
		return nil, err
	}

	if userCart == nil {
		// Adopt the guest cart wholesale.
		if guestCart == nil {
			return s.GetOrCreate(ctx, "", &userID)
		}
		guestCart.UserID = &userID
		if err := s.cartCache.Save(ctx, guestCart); err != nil {
			return nil, err
		}
		return guestCart, nil
	}

	if guestCart != nil && guestCart.Token != userCart.Token {
		for _, item := range guestCart.Items {
			userCart.Upsert(item.ProductID, item.Quantity)
		}
		if err := s.cartCache.Delete(ctx, guestCart); err != nil {
			return nil, err
		}
	}
	if err := s.cartCache.Save(ctx, userCart); err != nil {
		return nil, err
	}
	return userCart, nil
}

// Evaluate re-fetches every product in the cart and runs the pricing
// aggregation. Products that have disappeared become nil line items, which
// the aggregation silently drops.
func (s *CartService) Evaluate(ctx context.Context, cart *models.Cart, isMember bool) (*pricing.Summary, error) {
	cfg, err := s.settingsRepo.GetMembershipConfig()
	if err != nil {
		return nil, err
	}
	items, err := s.buildLineItems(cart)
	if err != nil {
		return nil, err
	}
	summary := pricing.Aggregate(items, isMember, cfg, time.Now())
	return &summary, nil
}

// buildLineItems joins cart entries with fresh product snapshots, preserving
// cart order.
func (s *CartService) buildLineItems(cart *models.Cart) ([]pricing.LineItem, error) {
	ids := make([]int, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	items := make([]pricing.LineItem, 0, len(cart.Items))
	for _, entry := range cart.Items {
		var snap *pricing.ProductSnapshot
		if p, ok := byID[entry.ProductID]; ok {
			ps := p.Snapshot()
			snap = &ps
		}
		items = append(items, pricing.LineItem{Product: snap, Quantity: entry.Quantity})
	}
	return items, nil
}

// Products returns the live product rows for the cart's entries, keyed by id.
// Checkout uses this for stock validation and order item snapshots.
func (s *CartService) Products(cart *models.Cart) (map[int]*models.Product, error) {
	ids := make([]int, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return byID, nil
}

// Delete removes the cart entirely. Called after a successful checkout.
func (s *CartService) Delete(ctx context.Context, cart *models.Cart) error {
	return s.cartCache.Delete(ctx, cart)
}
