package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookbazaar/storefront-api/auth"
	"github.com/bookbazaar/storefront-api/backend"
	"github.com/bookbazaar/storefront-api/models"
	"github.com/bookbazaar/storefront-api/storage"
)

func guestSession() Session {
	return Session{ID: "sess_test", Auth: auth.State{Ready: true}}
}

func userSession(token string) Session {
	return Session{
		ID:   "sess_test",
		Auth: auth.State{User: &models.User{ID: "u1"}, Token: token, Ready: true},
	}
}

func book(id string, price float64) models.Product {
	return models.Product{ID: id, Title: "Book " + id, Price: price, Stock: 10}
}

func TestGuestAddMergesSameProductAndColor(t *testing.T) {
	store := storage.NewMemory()
	m := NewManager(backend.NewClient("http://backend.invalid"), store)
	ctx := context.Background()
	sess := guestSession()

	_, err := m.Add(ctx, sess, book("p1", 100), 1, "Red")
	require.NoError(t, err)
	cart, err := m.Add(ctx, sess, book("p1", 100), 2, "Red")
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, 3, cart.TotalItems)
	assert.Equal(t, 300.0, cart.TotalPrice)
}

func TestGuestAddDifferentColorsStaySeparate(t *testing.T) {
	store := storage.NewMemory()
	m := NewManager(backend.NewClient("http://backend.invalid"), store)
	ctx := context.Background()
	sess := guestSession()

	_, err := m.Add(ctx, sess, book("p1", 100), 1, "Red")
	require.NoError(t, err)
	cart, err := m.Add(ctx, sess, book("p1", 100), 1, "Blue")
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
	assert.NotEqual(t, cart.Items[0].ID, cart.Items[1].ID)
}

func TestAddRejectsNonPositiveQuantity(t *testing.T) {
	m := NewManager(backend.NewClient("http://backend.invalid"), storage.NewMemory())

	_, err := m.Add(context.Background(), guestSession(), book("p1", 100), 0, "")
	assert.Error(t, err)
}

func TestGuestUpdateToZeroRemovesItem(t *testing.T) {
	store := storage.NewMemory()
	m := NewManager(backend.NewClient("http://backend.invalid"), store)
	ctx := context.Background()
	sess := guestSession()

	cart, err := m.Add(ctx, sess, book("p1", 100), 2, "")
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	cart, err = m.UpdateItem(ctx, sess, itemID, 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, cart.TotalItems)

	// Negative quantities behave the same as zero.
	cart, err = m.Add(ctx, sess, book("p2", 50), 1, "")
	require.NoError(t, err)
	cart, err = m.UpdateItem(ctx, sess, cart.Items[0].ID, -3)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestGuestRemoveItem(t *testing.T) {
	store := storage.NewMemory()
	m := NewManager(backend.NewClient("http://backend.invalid"), store)
	ctx := context.Background()
	sess := guestSession()

	cart, err := m.Add(ctx, sess, book("p1", 100), 1, "")
	require.NoError(t, err)
	_, err = m.Add(ctx, sess, book("p2", 50), 1, "")
	require.NoError(t, err)

	got, err := m.RemoveItem(ctx, sess, cart.Items[0].ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "p2", got.Items[0].Product.ID)
	assert.Equal(t, 50.0, got.TotalPrice)
}

func TestGuestClearPersistsAcrossReload(t *testing.T) {
	store := storage.NewMemory()
	m := NewManager(backend.NewClient("http://backend.invalid"), store)
	ctx := context.Background()
	sess := guestSession()

	_, err := m.Add(ctx, sess, book("p1", 100), 2, "")
	require.NoError(t, err)
	_, err = m.Clear(ctx, sess)
	require.NoError(t, err)

	// A fresh manager over the same store must see the empty cart, not
	// the pre-clear contents.
	m2 := NewManager(backend.NewClient("http://backend.invalid"), store)
	cart, err := m2.Get(ctx, sess)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.TotalPrice)
}

func TestGuestCartSurvivesReload(t *testing.T) {
	store := storage.NewMemory()
	m := NewManager(backend.NewClient("http://backend.invalid"), store)
	ctx := context.Background()
	sess := guestSession()

	_, err := m.Add(ctx, sess, book("p1", 100), 2, "Red")
	require.NoError(t, err)

	m2 := NewManager(backend.NewClient("http://backend.invalid"), store)
	cart, err := m2.Get(ctx, sess)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, "Red", cart.Items[0].SelectedColorName)
	assert.Equal(t, 200.0, cart.TotalPrice)
}

func TestCorruptGuestCartStartsOver(t *testing.T) {
	store := storage.NewMemory()
	require.NoError(t, store.Set(context.Background(), "sess_test", storage.KeyGuestCart, "{not json"))

	m := NewManager(backend.NewClient("http://backend.invalid"), store)
	cart, err := m.Get(context.Background(), guestSession())
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, models.GuestCartID, cart.ID)
}

func TestRefreshNoOpWhileAuthNotReady(t *testing.T) {
	m := NewManager(backend.NewClient("http://backend.invalid"), storage.NewMemory())

	cart, err := m.Refresh(context.Background(), Session{ID: "sess_test"})
	assert.NoError(t, err)
	assert.Nil(t, cart)
}

func TestUserSessionUsesServerCartNotGuestBlob(t *testing.T) {
	serverCart := models.Cart{
		ID:       "cart-77",
		OwnerRef: "u1",
		Items: []models.CartItem{
			{ID: "srv-1", Product: book("p9", 75), Quantity: 1},
		},
		TotalItems: 1,
		TotalPrice: 75,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/cart", r.URL.Path)
		require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(serverCart)
	}))
	defer srv.Close()

	store := storage.NewMemory()
	m := NewManager(backend.NewClient(srv.URL), store)
	ctx := context.Background()

	// Guest items added before login do not leak into the user cart.
	_, err := m.Add(ctx, guestSession(), book("p1", 100), 1, "")
	require.NoError(t, err)

	cart, err := m.Refresh(ctx, userSession("tok-1"))
	require.NoError(t, err)
	assert.Equal(t, "cart-77", cart.ID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p9", cart.Items[0].Product.ID)
}

func TestAddingProductTracksInFlightAdd(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		json.NewEncoder(w).Encode(models.Cart{ID: "cart-77", Items: []models.CartItem{}})
	}))
	defer srv.Close()

	m := NewManager(backend.NewClient(srv.URL), storage.NewMemory())
	assert.Empty(t, m.AddingProduct())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := m.Add(context.Background(), userSession("tok-1"), book("p1", 100), 1, "")
		assert.NoError(t, err)
	}()

	<-started
	assert.Equal(t, "p1", m.AddingProduct())
	close(release)
	<-done
	assert.Empty(t, m.AddingProduct())
}

func TestUserCartMutationsDelegate(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		json.NewEncoder(w).Encode(models.Cart{ID: "cart-77", Items: []models.CartItem{}})
	}))
	defer srv.Close()

	m := NewManager(backend.NewClient(srv.URL), storage.NewMemory())
	ctx := context.Background()
	sess := userSession("tok-1")

	_, err := m.Add(ctx, sess, book("p1", 100), 1, "Red")
	require.NoError(t, err)
	assert.Equal(t, "/api/cart/items", gotPath)
	assert.Equal(t, http.MethodPost, gotMethod)

	_, err = m.RemoveItem(ctx, sess, "srv-1")
	require.NoError(t, err)
	assert.Equal(t, "/api/cart/items/srv-1", gotPath)
	assert.Equal(t, http.MethodDelete, gotMethod)
}
