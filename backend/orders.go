package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/bookbazaar/storefront-api/models"
)

// OrderLine is one product/quantity pair of an order-creation payload.
type OrderLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color,omitempty"`
}

// GuestInfo identifies a guest buyer on guest-order creation.
type GuestInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CreateOrderRequest is shared between the user and guest order
// endpoints; GuestInfo is only set on the guest variant.
type CreateOrderRequest struct {
	Products        []OrderLine            `json:"products"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
	GuestInfo       *GuestInfo             `json:"guestInfo,omitempty"`
}

// OrderResult is what order creation returns: the canonical order id and
// the amount the payment gateway will charge. Both are treated as the
// sole source of truth downstream.
type OrderResult struct {
	OrderID     string  `json:"orderId"`
	FinalAmount float64 `json:"finalAmount"`
}

func (c *Client) CreateUserOrder(ctx context.Context, token string, req CreateOrderRequest) (*OrderResult, error) {
	var res OrderResult
	if err := c.do(ctx, http.MethodPost, "/api/orders", token, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) CreateGuestOrder(ctx context.Context, req CreateOrderRequest) (*OrderResult, error) {
	var res OrderResult
	if err := c.do(ctx, http.MethodPost, "/api/orders/guest", "", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetOrder(ctx context.Context, token, orderID string) (*models.Order, error) {
	var order models.Order
	path := "/api/orders/" + url.PathEscape(orderID)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) ListMyOrders(ctx context.Context, token string) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders/mine", token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) CancelOrder(ctx context.Context, token, orderID string) error {
	path := "/api/orders/" + url.PathEscape(orderID) + "/cancel"
	return c.do(ctx, http.MethodPost, path, token, nil, nil)
}
