package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/bookbazaar/storefront-api/models"
)

// AddCartItemRequest is the payload for the backend "add item" endpoint.
type AddCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color,omitempty"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart fetches the server-side cart of the authenticated user.
func (c *Client) GetCart(ctx context.Context, token string) (*models.Cart, error) {
	var cart models.Cart
	if err := c.do(ctx, http.MethodGet, "/api/cart", token, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddCartItem adds a product to the server-side cart and returns the
// cart exactly as the server now sees it.
func (c *Client) AddCartItem(ctx context.Context, token string, req AddCartItemRequest) (*models.Cart, error) {
	var cart models.Cart
	if err := c.do(ctx, http.MethodPost, "/api/cart/items", token, req, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpdateCartItem sets the quantity of an existing server-side cart item.
func (c *Client) UpdateCartItem(ctx context.Context, token, itemID string, quantity int) (*models.Cart, error) {
	var cart models.Cart
	path := "/api/cart/items/" + url.PathEscape(itemID)
	if err := c.do(ctx, http.MethodPut, path, token, updateCartItemRequest{Quantity: quantity}, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// RemoveCartItem deletes one item from the server-side cart.
func (c *Client) RemoveCartItem(ctx context.Context, token, itemID string) (*models.Cart, error) {
	var cart models.Cart
	path := "/api/cart/items/" + url.PathEscape(itemID)
	if err := c.do(ctx, http.MethodDelete, path, token, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// ClearCart empties the server-side cart ("delete all").
func (c *Client) ClearCart(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodDelete, "/api/cart", token, nil, nil)
}
