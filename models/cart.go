package models

import (
	"fmt"
	"math"
	"time"
)

// GuestCartID is the fixed identity of a cart that lives entirely in
// session storage. Server-side carts carry the backend-assigned id.
const GuestCartID = "guest-cart"

type Cart struct {
	ID         string     `json:"id"`
	OwnerRef   string     `json:"ownerRef,omitempty"` // user id, or empty for guests
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"totalItems"`
	TotalPrice float64    `json:"totalPrice"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

type CartItem struct {
	ID                string    `json:"id"`
	Product           Product   `json:"product"`
	Quantity          int       `json:"quantity"`
	Price             float64   `json:"price"` // unit price snapshot taken at add time
	SelectedColorName string    `json:"selectedColorName,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// CartSummary is what the cart page shows: subtotal, tax and grand total,
// each rounded to two decimals.
type CartSummary struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// NewGuestCart returns an empty locally-owned cart.
func NewGuestCart() *Cart {
	now := time.Now()
	return &Cart{
		ID:        GuestCartID,
		Items:     []CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewGuestItemID builds the identity of a locally created cart item:
// product id plus creation timestamp. Server items keep their backend ids.
func NewGuestItemID(productID string, at time.Time) string {
	return fmt.Sprintf("%s-%d", productID, at.UnixMilli())
}

// RecomputeTotals rebuilds TotalItems and TotalPrice from the item list.
// Totals are never adjusted incrementally; every mutation ends here.
func (c *Cart) RecomputeTotals() {
	items := 0
	price := 0.0
	for _, it := range c.Items {
		items += it.Quantity
		price += it.Product.Price * float64(it.Quantity)
	}
	c.TotalItems = items
	c.TotalPrice = round2(price)
}

// FindItem locates an item by its uniqueness key (product id + colour).
// Returns the index, or -1 when absent.
func (c *Cart) FindItem(productID, colorName string) int {
	for i, it := range c.Items {
		if it.Product.ID == productID && it.SelectedColorName == colorName {
			return i
		}
	}
	return -1
}

// FindItemByID locates an item by its own id. Returns -1 when absent.
func (c *Cart) FindItemByID(itemID string) int {
	for i, it := range c.Items {
		if it.ID == itemID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy. Mutations run on the copy and only replace
// the live cart once persistence succeeded.
func (c *Cart) Clone() *Cart {
	dup := *c
	dup.Items = make([]CartItem, len(c.Items))
	copy(dup.Items, c.Items)
	return &dup
}

// Summarize computes the cart-page totals for a fractional tax rate
// (0.18 for 18% GST).
func (c *Cart) Summarize(taxRate float64) CartSummary {
	subtotal := 0.0
	for _, it := range c.Items {
		subtotal += it.Product.Price * float64(it.Quantity)
	}
	subtotal = round2(subtotal)
	tax := round2(subtotal * taxRate)
	return CartSummary{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    round2(subtotal + tax),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
