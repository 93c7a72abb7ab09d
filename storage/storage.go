// Package storage is the storefront's durable per-session key/value
// store: the server-side stand-in for the browser's local storage. Each
// session owns a small set of string keys (token, serialized user, guest
// cart blob, checkout latch) that survive across requests.
package storage

import (
	"context"
	"errors"
)

// Fixed keys a session may hold.
const (
	KeyToken           = "token"
	KeyCurrentUser     = "currentUser"
	KeyIsLoggedIn      = "isLoggedIn"
	KeyGuestCart       = "guestCart"
	KeyCheckoutAttempt = "checkoutAttempt"
)

// ErrNotFound is returned when a session has no value under a key.
var ErrNotFound = errors.New("storage: key not found")

type Store interface {
	Get(ctx context.Context, sessionID, key string) (string, error)
	Set(ctx context.Context, sessionID, key, value string) error
	// SetNX writes the value only when the key is absent, atomically.
	// Returns whether the write happened. Callers use it as a latch.
	SetNX(ctx context.Context, sessionID, key, value string) (bool, error)
	// Delete removes the given keys; missing keys are not an error.
	Delete(ctx context.Context, sessionID string, keys ...string) error
}
