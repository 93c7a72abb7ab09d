package cart

import (
	"context"

	"github.com/bookbazaar/storefront-api/backend"
	"github.com/bookbazaar/storefront-api/models"
)

// remoteSource delegates every mutation to the backend cart endpoints
// and takes the server's returned cart verbatim. For user carts the
// storefront does no arithmetic of its own.
type remoteSource struct {
	api *backend.Client
}

func (r *remoteSource) Load(ctx context.Context, sess Session) (*models.Cart, error) {
	return r.api.GetCart(ctx, sess.Auth.Token)
}

func (r *remoteSource) Add(ctx context.Context, sess Session, product models.Product, quantity int, colorName string) (*models.Cart, error) {
	return r.api.AddCartItem(ctx, sess.Auth.Token, backend.AddCartItemRequest{
		ProductID: product.ID,
		Quantity:  quantity,
		Color:     colorName,
	})
}

func (r *remoteSource) UpdateItem(ctx context.Context, sess Session, itemID string, quantity int) (*models.Cart, error) {
	return r.api.UpdateCartItem(ctx, sess.Auth.Token, itemID, quantity)
}

func (r *remoteSource) RemoveItem(ctx context.Context, sess Session, itemID string) (*models.Cart, error) {
	return r.api.RemoveCartItem(ctx, sess.Auth.Token, itemID)
}

func (r *remoteSource) Clear(ctx context.Context, sess Session) (*models.Cart, error) {
	if err := r.api.ClearCart(ctx, sess.Auth.Token); err != nil {
		return nil, err
	}
	empty := &models.Cart{
		Items: []models.CartItem{},
	}
	if sess.Auth.User != nil {
		empty.OwnerRef = sess.Auth.User.ID
	}
	return empty, nil
}
