package checkout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bookbazaar/storefront-api/backend"
)

// ErrAttemptInFlight means another checkout attempt already holds the
// per-session latch; a double submit is refused before any network call.
var ErrAttemptInFlight = errors.New("checkout: an attempt is already in progress")

// ErrNoAttempt means a payment outcome arrived with no attempt to
// resolve (stale callback, or the latch was already released).
var ErrNoAttempt = errors.New("checkout: no attempt in flight")

// ValidationError is a pre-network rejection: the shipping form is
// incomplete or the cart is empty. The user fixes the input; nothing
// was sent anywhere.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
	}
	return e.Message
}

// AuthError means a user session exists but cannot be trusted (missing
// or expired token, or the backend refused the credentials). The remedy
// is re-login, not form correction, so it is surfaced apart from
// validation failures.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return "authentication required: " + e.Reason
}

// ExternalError is a payment-gateway-side failure (unconfigured gateway,
// malformed gateway order). Fatal to the current attempt, never retried
// automatically.
type ExternalError struct {
	Service string
	Reason  string
}

func (e *ExternalError) Error() string {
	return e.Service + ": " + e.Reason
}

// VerificationError means the backend did not accept the payment proof.
// The cart stays untouched and the user is pointed at support.
type VerificationError struct {
	Message string
}

func (e *VerificationError) Error() string {
	return "payment verification failed: " + e.Message
}

// classifyOrderError routes auth-flavoured backend rejections to the
// authentication-error surface. Detection is by message content, the
// contract the backend actually offers.
func classifyOrderError(err error) error {
	var apiErr *backend.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	msg := strings.ToLower(apiErr.Message)
	if strings.Contains(msg, "token") || strings.Contains(msg, "auth") || strings.Contains(msg, "unauthorized") {
		return &AuthError{Reason: apiErr.Message}
	}
	return err
}
