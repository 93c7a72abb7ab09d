package checkout

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bookbazaar/storefront-api/storage"
)

// attempt is the record of one in-flight checkout, persisted under the
// session's checkoutAttempt key. Its presence is the double-submit
// latch; Begin refuses while it exists, and every terminal outcome
// releases it.
type attempt struct {
	ID             string    `json:"id"`
	OrderID        string    `json:"orderId"`
	GatewayOrderID string    `json:"gatewayOrderId,omitempty"`
	StartedAt      time.Time `json:"startedAt"`
}

func (o *Orchestrator) loadAttempt(ctx context.Context, sessionID string) (*attempt, error) {
	raw, err := o.store.Get(ctx, sessionID, storage.KeyCheckoutAttempt)
	if err == storage.ErrNotFound {
		return nil, ErrNoAttempt
	}
	if err != nil {
		return nil, err
	}
	var a attempt
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		// Unreadable latch: drop it rather than wedging checkout forever.
		_ = o.store.Delete(ctx, sessionID, storage.KeyCheckoutAttempt)
		return nil, ErrNoAttempt
	}
	return &a, nil
}

func (o *Orchestrator) saveAttempt(ctx context.Context, sessionID string, a *attempt) error {
	raw, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return o.store.Set(ctx, sessionID, storage.KeyCheckoutAttempt, string(raw))
}

// staleAttemptCutoff bounds how long an unresolved attempt can hold the
// latch. The widget either settles or the visitor is gone well inside
// this window; without a cutoff a closed tab would wedge checkout for
// the session until the storage TTL expires.
const staleAttemptCutoff = 15 * time.Minute

// acquireLatch installs a fresh attempt with an atomic set-if-absent,
// refusing when one is already in flight. Two overlapping submits race
// on the single SetNX, so exactly one wins. Attempts older than the
// staleness cutoff are discarded and the latch taken over.
func (o *Orchestrator) acquireLatch(ctx context.Context, sessionID string, a *attempt) error {
	acquired, err := o.trySetAttempt(ctx, sessionID, a)
	if err != nil || acquired {
		return err
	}

	prev, err := o.loadAttempt(ctx, sessionID)
	if err != nil && err != ErrNoAttempt {
		return err
	}
	if err == nil && time.Since(prev.StartedAt) < staleAttemptCutoff {
		return ErrAttemptInFlight
	}

	// Stale or unreadable holder: drop it and take one more shot. A
	// concurrent fresh acquire still wins the second SetNX over us.
	o.releaseLatch(ctx, sessionID)
	acquired, err = o.trySetAttempt(ctx, sessionID, a)
	if err != nil {
		return err
	}
	if !acquired {
		return ErrAttemptInFlight
	}
	return nil
}

func (o *Orchestrator) trySetAttempt(ctx context.Context, sessionID string, a *attempt) (bool, error) {
	raw, err := json.Marshal(a)
	if err != nil {
		return false, err
	}
	return o.store.SetNX(ctx, sessionID, storage.KeyCheckoutAttempt, string(raw))
}

func (o *Orchestrator) releaseLatch(ctx context.Context, sessionID string) {
	_ = o.store.Delete(ctx, sessionID, storage.KeyCheckoutAttempt)
}
