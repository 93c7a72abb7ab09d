package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookbazaar/storefront-api/models"
)

func TestDoSendsBearerTokenAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		json.NewEncoder(w).Encode(models.Cart{ID: "cart-1", Items: []models.CartItem{}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	cart, err := c.GetCart(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "cart-1", cart.ID)
}

func TestDoOmitsAuthorizationWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(ProductList{Products: []models.Product{}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.SearchProducts(context.Background(), "go")
	assert.NoError(t, err)
}

func TestAPIErrorExtractsMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"error field", `{"error":"product not found"}`, "product not found"},
		{"message field", `{"message":"out of stock"}`, "out of stock"},
		{"no body", ``, "request failed with status 404"},
		{"non-json body", `<html>gateway timeout</html>`, "request failed with status 404"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL)
			_, err := c.GetProduct(context.Background(), "p-missing")

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
			assert.Equal(t, tt.want, apiErr.Message)
		})
	}
}

func TestLoginToleratesBothResponseShapes(t *testing.T) {
	shapes := []string{
		`{"user":{"id":"u1","email":"a@b.c","name":"A"},"token":"tok-1"}`,
		`{"data":{"user":{"id":"u1","email":"a@b.c","name":"A"},"token":"tok-1"}}`,
	}
	for _, shape := range shapes {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(shape))
		}))

		c := NewClient(srv.URL)
		user, token, err := c.Login(context.Background(), "a@b.c", "pw")
		srv.Close()

		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
		assert.Equal(t, "tok-1", token)
	}
}

func TestLoginRejectsResponseWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user":{"id":"u1"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, _, err := c.Login(context.Background(), "a@b.c", "pw")
	assert.Error(t, err)
}
