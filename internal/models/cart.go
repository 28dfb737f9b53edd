package models

import "time"

// CartItem is a single product reference inside a cart. Carts live in Redis
// keyed by cart token; the item only stores the product id and quantity, the
// product snapshot is re-fetched on every evaluation so stale entries can be
// dropped.
type CartItem struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// Cart is the Redis-persisted cart document. UserID is nil for guest carts,
// which are owned by the cookie-backed token alone.
type Cart struct {
	Token     string     `json:"token"`
	UserID    *int       `json:"userId,omitempty"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Upsert adds quantity to an existing line or appends a new one. A resulting
// quantity of zero or less removes the line.
func (c *Cart) Upsert(productID, quantity int) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			if c.Items[i].Quantity <= 0 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
			}
			return
		}
	}
	if quantity > 0 {
		c.Items = append(c.Items, CartItem{ProductID: productID, Quantity: quantity})
	}
}

// SetQuantity replaces the quantity of a line, removing it when qty <= 0.
func (c *Cart) SetQuantity(productID, quantity int) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			if quantity <= 0 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
			} else {
				c.Items[i].Quantity = quantity
			}
			return
		}
	}
	if quantity > 0 {
		c.Items = append(c.Items, CartItem{ProductID: productID, Quantity: quantity})
	}
}
