package backend

import (
	"context"
	"net/http"
)

// GatewayOrder is the payment-provider-side order the checkout widget
// needs. Amount is in the gateway's minor currency unit (paise) exactly
// as the backend returned it; the storefront never reinterprets it.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// PaymentProof carries the three identifiers the gateway hands to the
// success callback of the checkout widget.
type PaymentProof struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// VerifyResult reports whether the backend accepted the payment proof.
type VerifyResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type createGatewayOrderRequest struct {
	OrderID string `json:"orderId"`
}

type markFailedRequest struct {
	OrderID string `json:"orderId"`
	Reason  string `json:"reason,omitempty"`
}

// CreateGatewayOrder asks the backend to mint a gateway-side order keyed
// by the backend order id.
func (c *Client) CreateGatewayOrder(ctx context.Context, token, orderID string) (*GatewayOrder, error) {
	var gw GatewayOrder
	if err := c.do(ctx, http.MethodPost, "/api/payments/razorpay/order", token, createGatewayOrderRequest{OrderID: orderID}, &gw); err != nil {
		return nil, err
	}
	return &gw, nil
}

// VerifyPayment submits the gateway proof for server-side verification.
func (c *Client) VerifyPayment(ctx context.Context, token string, proof PaymentProof) (*VerifyResult, error) {
	var res VerifyResult
	if err := c.do(ctx, http.MethodPost, "/api/payments/razorpay/verify", token, proof, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// MarkPaymentFailed records a gateway-reported failure against the
// backend order. Best effort; the order itself stays whatever state the
// backend assigns it.
func (c *Client) MarkPaymentFailed(ctx context.Context, token, orderID, reason string) error {
	return c.do(ctx, http.MethodPost, "/api/payments/razorpay/failed", token, markFailedRequest{OrderID: orderID, Reason: reason}, nil)
}
