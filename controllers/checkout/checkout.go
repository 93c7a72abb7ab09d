package checkoutControllers

import (
	"errors"
	"net/http"

	"github.com/bookbazaar/storefront-api/backend"
	"github.com/bookbazaar/storefront-api/checkout"
	"github.com/bookbazaar/storefront-api/middleware"
	"github.com/bookbazaar/storefront-api/models"
	"github.com/gin-gonic/gin"
)

type beginInput struct {
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
}

type verifyInput struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

type failInput struct {
	Reason string `json:"reason"`
}

// POST /checkout/razorpay/begin
// Validates, creates the backend order and the gateway order, and
// returns the widget options the page opens the payment modal with.
func BeginRazorpay(orch *checkout.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input beginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		result, err := orch.Begin(c.Request.Context(), middleware.CartSession(c), input.ShippingAddress)
		if err != nil {
			writeCheckoutError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// POST /checkout/razorpay/verify
// The widget's success handler posts the three gateway identifiers here.
func VerifyRazorpay(orch *checkout.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input verifyInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		outcome, err := orch.CompletePayment(c.Request.Context(), middleware.CartSession(c), backend.PaymentProof{
			RazorpayOrderID:   input.RazorpayOrderID,
			RazorpayPaymentID: input.RazorpayPaymentID,
			RazorpaySignature: input.RazorpaySignature,
		})
		if err != nil {
			writeCheckoutError(c, err)
			return
		}
		c.JSON(http.StatusOK, outcome)
	}
}

// POST /checkout/razorpay/fail
// The widget's payment.failed event lands here; retryable.
func FailRazorpay(orch *checkout.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input failInput
		_ = c.ShouldBindJSON(&input)

		if err := orch.FailPayment(c.Request.Context(), middleware.CartSession(c), input.Reason); err != nil {
			writeCheckoutError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment failed, you can try again"})
	}
}

// POST /checkout/razorpay/cancel
// Modal dismissed by the user. Not an error; just resets the attempt.
func CancelRazorpay(orch *checkout.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := orch.CancelPayment(c.Request.Context(), middleware.CartSession(c)); err != nil {
			writeCheckoutError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Checkout cancelled"})
	}
}

// POST /checkout/cod
func PlaceCOD(orch *checkout.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input beginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		outcome, err := orch.PlaceCODOrder(c.Request.Context(), middleware.CartSession(c), input.ShippingAddress)
		if err != nil {
			writeCheckoutError(c, err)
			return
		}
		c.JSON(http.StatusOK, outcome)
	}
}

// writeCheckoutError maps the checkout error taxonomy onto the HTTP
// surface. Authentication problems are kept apart from form problems:
// the client shows a re-login prompt, not a generic alert.
func writeCheckoutError(c *gin.Context, err error) {
	var validationErr *checkout.ValidationError
	var authErr *checkout.AuthError
	var externalErr *checkout.ExternalError
	var verificationErr *checkout.VerificationError
	var apiErr *backend.APIError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error(), "kind": "validation", "fields": validationErr.Fields})
	case errors.As(err, &authErr):
		c.JSON(http.StatusUnauthorized, gin.H{"error": authErr.Error(), "kind": "auth"})
	case errors.As(err, &externalErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": externalErr.Error(), "kind": "external"})
	case errors.As(err, &verificationErr):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": verificationErr.Error(), "kind": "verification"})
	case errors.Is(err, checkout.ErrAttemptInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "kind": "in_flight"})
	case errors.Is(err, checkout.ErrNoAttempt):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "kind": "no_attempt"})
	case errors.As(err, &apiErr):
		c.JSON(apiErr.StatusCode, gin.H{"error": apiErr.Message, "kind": "backend"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
