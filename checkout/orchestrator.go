// Package checkout drives a session from "cart contents plus shipping
// form" to "confirmed order", across the online-payment and
// cash-on-delivery paths. One checkout attempt is an explicit lifecycle
// guarded by a per-session latch, with three terminal outcomes:
// completed with proof, failed with reason, or cancelled.
package checkout

import (
	"context"
	"time"

	"github.com/bookbazaar/storefront-api/auth"
	"github.com/bookbazaar/storefront-api/backend"
	"github.com/bookbazaar/storefront-api/cart"
	"github.com/bookbazaar/storefront-api/models"
	"github.com/bookbazaar/storefront-api/storage"
	"github.com/google/uuid"
)

// Config is the gateway-facing configuration, injected at startup.
type Config struct {
	RazorpayKeyID string
	Currency      string // gateway currency code, e.g. "INR"
	ScriptURL     string // checkout widget script the page must load
	StoreName     string // shown in the widget header
	ThemeColor    string
}

const defaultScriptURL = "https://checkout.razorpay.com/v1/checkout.js"

type Orchestrator struct {
	api   *backend.Client
	carts *cart.Manager
	store storage.Store
	cfg   Config
}

func NewOrchestrator(api *backend.Client, carts *cart.Manager, store storage.Store, cfg Config) *Orchestrator {
	if cfg.ScriptURL == "" {
		cfg.ScriptURL = defaultScriptURL
	}
	if cfg.Currency == "" {
		cfg.Currency = "INR"
	}
	return &Orchestrator{api: api, carts: carts, store: store, cfg: cfg}
}

// WidgetOptions is everything the browser hands to the gateway widget
// constructor. Amount is in the gateway's minor unit, passed through
// from the backend untouched.
type WidgetOptions struct {
	Key      string        `json:"key"`
	Amount   int64         `json:"amount"`
	Currency string        `json:"currency"`
	OrderID  string        `json:"order_id"`
	Name     string        `json:"name,omitempty"`
	Prefill  WidgetPrefill `json:"prefill"`
	Notes    WidgetNotes   `json:"notes"`
	Theme    WidgetTheme   `json:"theme"`
	Script   string        `json:"script"`
}

type WidgetPrefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

// WidgetNotes embeds the backend order id in the gateway order so the
// two records stay connectable.
type WidgetNotes struct {
	OrderID string `json:"orderId"`
}

type WidgetTheme struct {
	Color string `json:"color,omitempty"`
}

// BeginResult is a started online-payment attempt, ready for the widget.
type BeginResult struct {
	AttemptID string        `json:"attemptId"`
	OrderID   string        `json:"orderId"`
	Amount    float64       `json:"finalAmount"`
	Widget    WidgetOptions `json:"widget"`
}

// Outcome is a finished checkout: where to send the user next.
type Outcome struct {
	OrderID    string `json:"orderId"`
	RedirectTo string `json:"redirectTo"`
}

// validate runs the pre-network checks: every shipping field present,
// and, when a user session exists, a usable bearer token. A missing
// or visibly expired token is an authentication problem, not a form
// problem, and is surfaced as such.
func (o *Orchestrator) validate(sess cart.Session, addr models.ShippingAddress) error {
	if missing := addr.MissingFields(); len(missing) > 0 {
		return &ValidationError{Message: "missing required fields", Fields: missing}
	}
	if !sess.Auth.IsGuest() {
		if sess.Auth.Token == "" {
			return &AuthError{Reason: "session has no token, please log in again"}
		}
		if auth.TokenLooksExpired(sess.Auth.Token) {
			return &AuthError{Reason: "session token expired, please log in again"}
		}
	}
	return nil
}

// ensureGateway is the server-side analog of loading the widget script:
// without a configured key the attempt aborts before any order exists.
func (o *Orchestrator) ensureGateway() error {
	if o.cfg.RazorpayKeyID == "" {
		return &ExternalError{Service: "razorpay", Reason: "payment gateway is not configured"}
	}
	return nil
}

// createOrder creates the backend order for the session's cart, on the
// guest or user endpoint depending on the session kind.
func (o *Orchestrator) createOrder(ctx context.Context, sess cart.Session, addr models.ShippingAddress, method string) (*backend.OrderResult, error) {
	current, err := o.carts.Get(ctx, sess)
	if err != nil {
		return nil, err
	}
	if len(current.Items) == 0 {
		return nil, &ValidationError{Message: "cart is empty"}
	}

	lines := make([]backend.OrderLine, 0, len(current.Items))
	for _, it := range current.Items {
		lines = append(lines, backend.OrderLine{
			ProductID: it.Product.ID,
			Quantity:  it.Quantity,
			Color:     it.SelectedColorName,
		})
	}

	req := backend.CreateOrderRequest{
		Products:        lines,
		ShippingAddress: addr,
		PaymentMethod:   method,
	}

	if sess.Auth.IsGuest() {
		req.GuestInfo = &backend.GuestInfo{
			Name:  addr.FullName,
			Email: addr.Email,
			Phone: addr.Phone,
		}
		res, err := o.api.CreateGuestOrder(ctx, req)
		if err != nil {
			return nil, classifyOrderError(err)
		}
		return res, nil
	}

	res, err := o.api.CreateUserOrder(ctx, sess.Auth.Token, req)
	if err != nil {
		return nil, classifyOrderError(err)
	}
	return res, nil
}

// Begin runs the online-payment path up to the widget handoff:
// validate, gateway readiness, latch, backend order, gateway order.
// Anything that fails releases the latch so the user can re-initiate.
func (o *Orchestrator) Begin(ctx context.Context, sess cart.Session, addr models.ShippingAddress) (*BeginResult, error) {
	if err := o.validate(sess, addr); err != nil {
		return nil, err
	}
	if err := o.ensureGateway(); err != nil {
		return nil, err
	}

	a := &attempt{ID: uuid.NewString(), StartedAt: time.Now()}
	if err := o.acquireLatch(ctx, sess.ID, a); err != nil {
		return nil, err
	}

	order, err := o.createOrder(ctx, sess, addr, models.PaymentMethodRazorpay)
	if err != nil {
		o.releaseLatch(ctx, sess.ID)
		return nil, err
	}

	gw, err := o.api.CreateGatewayOrder(ctx, sess.Auth.Token, order.OrderID)
	if err != nil {
		o.releaseLatch(ctx, sess.ID)
		return nil, err
	}
	if gw.ID == "" || gw.Amount <= 0 {
		// Malformed gateway order: fatal before any widget handoff.
		o.releaseLatch(ctx, sess.ID)
		return nil, &ExternalError{Service: "razorpay", Reason: "gateway order is missing id or amount"}
	}

	a.OrderID = order.OrderID
	a.GatewayOrderID = gw.ID
	if err := o.saveAttempt(ctx, sess.ID, a); err != nil {
		o.releaseLatch(ctx, sess.ID)
		return nil, err
	}

	currency := gw.Currency
	if currency == "" {
		currency = o.cfg.Currency
	}
	return &BeginResult{
		AttemptID: a.ID,
		OrderID:   order.OrderID,
		Amount:    order.FinalAmount,
		Widget: WidgetOptions{
			Key:      o.cfg.RazorpayKeyID,
			Amount:   gw.Amount,
			Currency: currency,
			OrderID:  gw.ID,
			Name:     o.cfg.StoreName,
			Prefill: WidgetPrefill{
				Name:    addr.FullName,
				Email:   addr.Email,
				Contact: addr.Phone,
			},
			Notes:  WidgetNotes{OrderID: order.OrderID},
			Theme:  WidgetTheme{Color: o.cfg.ThemeColor},
			Script: o.cfg.ScriptURL,
		},
	}, nil
}

// CompletePayment resolves an attempt with the proof the gateway's
// success handler produced. Verification happens server-side; only a
// verified payment clears the cart.
func (o *Orchestrator) CompletePayment(ctx context.Context, sess cart.Session, proof backend.PaymentProof) (*Outcome, error) {
	a, err := o.loadAttempt(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	if a.GatewayOrderID != "" && proof.RazorpayOrderID != a.GatewayOrderID {
		// Stale or foreign proof. The latch stays held: the attempt it
		// belongs to may still settle with the right proof.
		return nil, &VerificationError{Message: "payment proof does not match the checkout in progress"}
	}

	res, err := o.api.VerifyPayment(ctx, sess.Auth.Token, proof)
	if err != nil {
		// Reset the in-flight state; the payment itself is with support now.
		o.releaseLatch(ctx, sess.ID)
		return nil, &VerificationError{Message: err.Error()}
	}
	if !res.Success {
		o.releaseLatch(ctx, sess.ID)
		msg := res.Message
		if msg == "" {
			msg = "payment could not be verified, please contact support"
		}
		return nil, &VerificationError{Message: msg}
	}

	if _, err := o.carts.Clear(ctx, sess); err != nil {
		o.releaseLatch(ctx, sess.ID)
		return nil, err
	}
	o.releaseLatch(ctx, sess.ID)

	return &Outcome{OrderID: a.OrderID, RedirectTo: o.successRedirect(sess, a.OrderID)}, nil
}

// FailPayment resolves an attempt the gateway reported as failed. The
// backend order stays whatever the backend makes of it; the failure is
// recorded best-effort and the latch released so the user can retry.
func (o *Orchestrator) FailPayment(ctx context.Context, sess cart.Session, reason string) error {
	a, err := o.loadAttempt(ctx, sess.ID)
	if err != nil {
		return err
	}
	_ = o.api.MarkPaymentFailed(ctx, sess.Auth.Token, a.OrderID, reason)
	o.releaseLatch(ctx, sess.ID)
	return nil
}

// CancelPayment resolves an attempt the user dismissed. Not an error:
// no backend call, just reset so an immediate re-attempt works.
func (o *Orchestrator) CancelPayment(ctx context.Context, sess cart.Session) error {
	if _, err := o.loadAttempt(ctx, sess.ID); err != nil {
		return err
	}
	o.releaseLatch(ctx, sess.ID)
	return nil
}

// PlaceCODOrder is the cash-on-delivery path: validate and create the
// backend order, no gateway interaction. Success clears the cart and
// navigates exactly like a verified online payment.
func (o *Orchestrator) PlaceCODOrder(ctx context.Context, sess cart.Session, addr models.ShippingAddress) (*Outcome, error) {
	if err := o.validate(sess, addr); err != nil {
		return nil, err
	}

	a := &attempt{ID: uuid.NewString(), StartedAt: time.Now()}
	if err := o.acquireLatch(ctx, sess.ID, a); err != nil {
		return nil, err
	}
	defer o.releaseLatch(ctx, sess.ID)

	order, err := o.createOrder(ctx, sess, addr, models.PaymentMethodCOD)
	if err != nil {
		return nil, err
	}
	if _, err := o.carts.Clear(ctx, sess); err != nil {
		return nil, err
	}

	return &Outcome{OrderID: order.OrderID, RedirectTo: o.successRedirect(sess, order.OrderID)}, nil
}

// successRedirect: authenticated buyers land on their order history,
// guests on the confirmation page keyed by the same backend order id.
func (o *Orchestrator) successRedirect(sess cart.Session, orderID string) string {
	if sess.Auth.IsGuest() {
		return "/guest-order/" + orderID
	}
	return "/profile?orderId=" + orderID
}
