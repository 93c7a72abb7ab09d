package cart

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bookbazaar/storefront-api/models"
	"github.com/bookbazaar/storefront-api/storage"
)

// guestSource keeps the whole cart as a JSON blob in session storage
// under the fixed guestCart key. Mutations work on a snapshot (decode,
// mutate the copy, recompute totals, persist), so the stored cart only
// changes once the write succeeded.
type guestSource struct {
	store storage.Store
}

func (g *guestSource) Load(ctx context.Context, sess Session) (*models.Cart, error) {
	raw, err := g.store.Get(ctx, sess.ID, storage.KeyGuestCart)
	if err == storage.ErrNotFound {
		return models.NewGuestCart(), nil
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		// Unreadable blob: start over with an empty cart.
		return models.NewGuestCart(), nil
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return &cart, nil
}

func (g *guestSource) persist(ctx context.Context, sess Session, cart *models.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return g.store.Set(ctx, sess.ID, storage.KeyGuestCart, string(raw))
}

func (g *guestSource) Add(ctx context.Context, sess Session, product models.Product, quantity int, colorName string) (*models.Cart, error) {
	cart, err := g.Load(ctx, sess)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	next := cart.Clone()
	if idx := next.FindItem(product.ID, colorName); idx >= 0 {
		// Same product+colour already present: one row, summed quantity.
		next.Items[idx].Quantity += quantity
		next.Items[idx].UpdatedAt = now
	} else {
		next.Items = append(next.Items, models.CartItem{
			ID:                models.NewGuestItemID(product.ID, now),
			Product:           product,
			Quantity:          quantity,
			Price:             product.Price,
			SelectedColorName: colorName,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
	}
	next.UpdatedAt = now
	next.RecomputeTotals()

	if err := g.persist(ctx, sess, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (g *guestSource) UpdateItem(ctx context.Context, sess Session, itemID string, quantity int) (*models.Cart, error) {
	cart, err := g.Load(ctx, sess)
	if err != nil {
		return nil, err
	}

	idx := cart.FindItemByID(itemID)
	if idx < 0 {
		return cart, nil
	}

	next := cart.Clone()
	now := time.Now()
	next.Items[idx].Quantity = quantity
	next.Items[idx].UpdatedAt = now
	next.UpdatedAt = now
	next.RecomputeTotals()

	if err := g.persist(ctx, sess, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (g *guestSource) RemoveItem(ctx context.Context, sess Session, itemID string) (*models.Cart, error) {
	cart, err := g.Load(ctx, sess)
	if err != nil {
		return nil, err
	}

	next := cart.Clone()
	filtered := next.Items[:0]
	for _, it := range next.Items {
		if it.ID != itemID {
			filtered = append(filtered, it)
		}
	}
	next.Items = filtered
	next.UpdatedAt = time.Now()
	next.RecomputeTotals()

	if err := g.persist(ctx, sess, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (g *guestSource) Clear(ctx context.Context, sess Session) (*models.Cart, error) {
	empty := models.NewGuestCart()
	if err := g.persist(ctx, sess, empty); err != nil {
		return nil, err
	}
	return empty, nil
}
