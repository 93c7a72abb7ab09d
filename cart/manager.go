// Package cart is the single source of truth for "what is in the cart
// right now". It abstracts over the two cart lifecycles, a guest cart
// persisted in session storage and a user cart owned by the backend,
// behind one interface, with the source picked from the auth state at
// a single point.
package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/bookbazaar/storefront-api/auth"
	"github.com/bookbazaar/storefront-api/backend"
	"github.com/bookbazaar/storefront-api/models"
	"github.com/bookbazaar/storefront-api/storage"
)

// Session bundles what every cart operation needs: the storefront
// session id and the hydrated auth state. The auth manager produces it;
// the cart manager never reaches into ambient globals.
type Session struct {
	ID   string
	Auth auth.State
}

// source is one cart backend. Implementations either mutate the locally
// persisted guest blob or delegate to the backend API, always returning
// the full resulting cart.
type source interface {
	Load(ctx context.Context, sess Session) (*models.Cart, error)
	Add(ctx context.Context, sess Session, product models.Product, quantity int, colorName string) (*models.Cart, error)
	UpdateItem(ctx context.Context, sess Session, itemID string, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, sess Session, itemID string) (*models.Cart, error)
	Clear(ctx context.Context, sess Session) (*models.Cart, error)
}

type Manager struct {
	guest  source
	remote source

	mu       sync.Mutex
	inFlight string // product id of an add currently in flight
}

func NewManager(api *backend.Client, store storage.Store) *Manager {
	return &Manager{
		guest:  &guestSource{store: store},
		remote: &remoteSource{api: api},
	}
}

// sourceFor is the single guest/user branch point. "Guest" means no
// authenticated user is present; token validity is not checked here, so
// a broken user session fails loudly on the server path instead of
// silently falling back to guest behavior.
func (m *Manager) sourceFor(sess Session) source {
	if sess.Auth.IsGuest() {
		return m.guest
	}
	return m.remote
}

// Get loads the authoritative cart for the session.
func (m *Manager) Get(ctx context.Context, sess Session) (*models.Cart, error) {
	return m.sourceFor(sess).Load(ctx, sess)
}

// Add puts quantity of a product (optionally a colour variant) in the
// cart. Stock pre-checks are the caller's concern; the backend stays
// the authority for server carts. On failure the previous cart state is
// left untouched.
func (m *Manager) Add(ctx context.Context, sess Session, product models.Product, quantity int, colorName string) (*models.Cart, error) {
	if quantity < 1 {
		return nil, errors.New("quantity must be at least 1")
	}

	m.setInFlight(product.ID)
	defer m.setInFlight("")

	return m.sourceFor(sess).Add(ctx, sess, product, quantity, colorName)
}

// UpdateItem sets an item's quantity. Zero or negative removes the item
// entirely, on both the guest and the server path.
func (m *Manager) UpdateItem(ctx context.Context, sess Session, itemID string, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return m.RemoveItem(ctx, sess, itemID)
	}
	return m.sourceFor(sess).UpdateItem(ctx, sess, itemID, quantity)
}

func (m *Manager) RemoveItem(ctx context.Context, sess Session, itemID string) (*models.Cart, error) {
	return m.sourceFor(sess).RemoveItem(ctx, sess, itemID)
}

// Clear resets the cart to empty: the server path calls the delete-all
// endpoint, the guest path persists an empty cart.
func (m *Manager) Clear(ctx context.Context, sess Session) (*models.Cart, error) {
	return m.sourceFor(sess).Clear(ctx, sess)
}

// Refresh re-derives which source is authoritative and reloads from it.
// Idempotent, meant to run on every auth transition. While auth is
// still resolving it is a no-op and returns a nil cart: it must not
// race ahead of authentication.
//
// Note that a guest-to-user transition does not merge the guest cart
// into the server cart; the server state simply wins. The guest blob is
// left behind in storage. Known UX gap, kept deliberately.
func (m *Manager) Refresh(ctx context.Context, sess Session) (*models.Cart, error) {
	if !sess.Auth.Ready {
		return nil, nil
	}
	return m.sourceFor(sess).Load(ctx, sess)
}

// AddingProduct reports the product id of an add currently in flight,
// so the UI can render a per-item loading state. Empty when idle.
func (m *Manager) AddingProduct() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inFlight
}

func (m *Manager) setInFlight(productID string) {
	m.mu.Lock()
	m.inFlight = productID
	m.mu.Unlock()
}
