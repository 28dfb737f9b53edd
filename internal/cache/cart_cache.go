package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pasarlink/pasar-api/internal/models"
)

// cartTTL keeps abandoned carts around for a week before Redis evicts them.
const cartTTL = 7 * 24 * time.Hour

// CartCache stores carts in Redis. Guest carts are keyed by the cookie-backed
// token alone; logged-in users additionally get a user-id key pointing to the
// same token so their cart follows them across devices.
type CartCache struct {
	redis *RedisClient
}

// NewCartCache creates a new CartCache.
func NewCartCache(redis *RedisClient) *CartCache {
	return &CartCache{redis: redis}
}

// keyByToken returns the primary Redis key for a cart.
func (c *CartCache) keyByToken(token string) string {
	return fmt.Sprintf("cart:token:%s", token)
}

// keyByUser returns the secondary key mapping a user to their cart token.
func (c *CartCache) keyByUser(userID int) string {
	return fmt.Sprintf("cart:user:%d", userID)
}

// Save stores the cart under its token and, when owned by a user, refreshes
// the user pointer key. TTL is reset on every write.
func (c *CartCache) Save(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	if err := c.redis.Set(ctx, c.keyByToken(cart.Token), string(data), cartTTL); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}

	if cart.UserID != nil {
		if err := c.redis.Set(ctx, c.keyByUser(*cart.UserID), cart.Token, cartTTL); err != nil {
			return fmt.Errorf("failed to save cart user key: %w", err)
		}
	}

	return nil
}

// GetByToken retrieves a cart by its token. A cache miss returns (nil, nil)
// so callers can treat a missing cart as empty.
func (c *CartCache) GetByToken(ctx context.Context, token string) (*models.Cart, error) {
	data, err := c.redis.Get(ctx, c.keyByToken(token))
	if err != nil {
		if IsNil(err) {
			return nil, nil
		}
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}
	return &cart, nil
}

// GetByUser retrieves the cart owned by a user, following the pointer key.
func (c *CartCache) GetByUser(ctx context.Context, userID int) (*models.Cart, error) {
	token, err := c.redis.Get(ctx, c.keyByUser(userID))
	if err != nil {
		if IsNil(err) {
			return nil, nil
		}
		return nil, err
	}
	return c.GetByToken(ctx, token)
}

// Delete removes a cart and, when applicable, its user pointer key.
func (c *CartCache) Delete(ctx context.Context, cart *models.Cart) error {
	keys := []string{c.keyByToken(cart.Token)}
	if cart.UserID != nil {
		keys = append(keys, c.keyByUser(*cart.UserID))
	}
	return c.redis.Delete(ctx, keys...)
}
