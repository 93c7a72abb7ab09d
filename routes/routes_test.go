package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookbazaar/storefront-api/auth"
	"github.com/bookbazaar/storefront-api/backend"
	"github.com/bookbazaar/storefront-api/cart"
	"github.com/bookbazaar/storefront-api/checkout"
	"github.com/bookbazaar/storefront-api/models"
	"github.com/bookbazaar/storefront-api/storage"
)

// fakeUpstream serves only what the guest flow touches: product lookup
// and order creation.
func fakeUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/products/p1":
			json.NewEncoder(w).Encode(models.Product{ID: "p1", Title: "A Book", Price: 550, Stock: 5})
		case "/api/orders/guest":
			json.NewEncoder(w).Encode(backend.OrderResult{OrderID: "ORD-1", FinalAmount: 649})
		case "/api/auth/login":
			json.NewEncoder(w).Encode(gin.H{
				"user":  models.User{ID: "u1", Email: "asha@example.com", Name: "Asha"},
				"token": "tok-1",
			})
		case "/api/auth/profile":
			if r.Header.Get("Authorization") != "Bearer tok-1" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(gin.H{"error": "invalid token"})
				return
			}
			json.NewEncoder(w).Encode(models.User{ID: "u1", Email: "asha@example.com", Name: "Asha R."})
		default:
			t.Errorf("unexpected upstream call: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

// client keeps the session cookie across requests the way a browser does.
func newTestStack(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	upstream := fakeUpstream(t)
	store := storage.NewMemory()
	api := backend.NewClient(upstream.URL)
	carts := cart.NewManager(api, store)

	r := gin.New()
	SetupRoutes(r, Deps{
		API:           api,
		Auth:          auth.NewManager(api, store),
		Carts:         carts,
		Checkout:      checkout.NewOrchestrator(api, carts, store, checkout.Config{RazorpayKeyID: "rzp_test_key"}),
		SessionSecret: "test-secret",
		TaxRate:       0.18,
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return srv, &http.Client{Jar: jar}
}

func postJSON(t *testing.T, client *http.Client, url string, payload interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := client.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestGuestCartFlowOverHTTP(t *testing.T) {
	srv, client := newTestStack(t)

	// First contact mints the session cookie.
	resp := postJSON(t, client, srv.URL+"/api/cart/items", gin.H{"productId": "p1", "quantity": 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var added models.Cart
	decode(t, resp, &added)
	require.Len(t, added.Items, 1)
	assert.Equal(t, 2, added.Items[0].Quantity)
	assert.Equal(t, 1100.0, added.TotalPrice)

	// The same cookie sees the same cart.
	getResp, err := client.Get(srv.URL + "/api/cart")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	var got models.Cart
	decode(t, getResp, &got)
	require.Len(t, got.Items, 1)
	assert.Equal(t, added.Items[0].ID, got.Items[0].ID)

	// Summary applies the configured tax rate.
	sumResp, err := client.Get(srv.URL + "/api/cart/summary")
	require.NoError(t, err)
	var sum struct {
		Summary models.CartSummary `json:"summary"`
	}
	decode(t, sumResp, &sum)
	assert.Equal(t, 1100.0, sum.Summary.Subtotal)
	assert.Equal(t, 198.0, sum.Summary.Tax)
	assert.Equal(t, 1298.0, sum.Summary.Total)
}

func TestAddToCartStockPreCheck(t *testing.T) {
	srv, client := newTestStack(t)

	resp := postJSON(t, client, srv.URL+"/api/cart/items", gin.H{"productId": "p1", "quantity": 99})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMeReflectsSessionOverHTTP(t *testing.T) {
	srv, client := newTestStack(t)

	// Anonymous session.
	resp, err := client.Get(srv.URL + "/api/auth/me")
	require.NoError(t, err)
	var anon struct {
		IsLoggedIn bool `json:"isLoggedIn"`
	}
	decode(t, resp, &anon)
	assert.False(t, anon.IsLoggedIn)

	loginResp := postJSON(t, client, srv.URL+"/api/auth/login", gin.H{
		"email":    "asha@example.com",
		"password": "secret",
	})
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	loginResp.Body.Close()

	// After login the profile comes fresh from the backend.
	meResp, err := client.Get(srv.URL + "/api/auth/me")
	require.NoError(t, err)
	var me struct {
		IsLoggedIn bool        `json:"isLoggedIn"`
		User       models.User `json:"user"`
	}
	decode(t, meResp, &me)
	assert.True(t, me.IsLoggedIn)
	assert.Equal(t, "u1", me.User.ID)
	assert.Equal(t, "Asha R.", me.User.Name)
}

func TestOrderHistoryRequiresLogin(t *testing.T) {
	srv, client := newTestStack(t)

	resp, err := client.Get(srv.URL + "/api/orders/mine")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGuestCODCheckoutOverHTTP(t *testing.T) {
	srv, client := newTestStack(t)

	resp := postJSON(t, client, srv.URL+"/api/cart/items", gin.H{"productId": "p1", "quantity": 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	codResp := postJSON(t, client, srv.URL+"/api/checkout/cod", gin.H{
		"shippingAddress": models.ShippingAddress{
			FullName:   "Asha Rao",
			Email:      "asha@example.com",
			Phone:      "9999999999",
			Address:    "12 MG Road",
			City:       "Bengaluru",
			State:      "KA",
			PostalCode: "560001",
			Country:    "IN",
		},
	})
	require.Equal(t, http.StatusOK, codResp.StatusCode)
	var out checkout.Outcome
	decode(t, codResp, &out)
	assert.Equal(t, "ORD-1", out.OrderID)
	assert.Equal(t, "/guest-order/ORD-1", out.RedirectTo)

	// The order emptied the cart.
	getResp, err := client.Get(srv.URL + "/api/cart")
	require.NoError(t, err)
	var got models.Cart
	decode(t, getResp, &got)
	assert.Empty(t, got.Items)
}

func TestIncompleteCheckoutAddressOverHTTP(t *testing.T) {
	srv, client := newTestStack(t)

	resp := postJSON(t, client, srv.URL+"/api/cart/items", gin.H{"productId": "p1", "quantity": 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	codResp := postJSON(t, client, srv.URL+"/api/checkout/cod", gin.H{
		"shippingAddress": gin.H{"fullName": "Asha Rao"},
	})
	require.Equal(t, http.StatusBadRequest, codResp.StatusCode)
	var body struct {
		Kind   string   `json:"kind"`
		Fields []string `json:"fields"`
	}
	decode(t, codResp, &body)
	assert.Equal(t, "validation", body.Kind)
	assert.Contains(t, body.Fields, "postalCode")
}
