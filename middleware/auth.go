package middleware

import (
	"net/http"

	"github.com/bookbazaar/storefront-api/auth"
	"github.com/bookbazaar/storefront-api/cart"
	"github.com/gin-gonic/gin"
)

// LoadAuth hydrates the session's auth state from storage before marking
// it ready. It never rejects: guests pass through, and components that
// need a user check the state (or use RequireUser).
func LoadAuth(manager *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := manager.State(c.Request.Context(), SessionID(c))
		c.Set("auth_state", state)
		c.Next()
	}
}

// AuthState returns the state LoadAuth hydrated. Absent middleware
// yields a zero state: not ready, treated as auth-still-loading.
func AuthState(c *gin.Context) auth.State {
	if v, ok := c.Get("auth_state"); ok {
		if state, ok := v.(auth.State); ok {
			return state
		}
	}
	return auth.State{}
}

// CartSession bundles the session id and auth state the way the cart
// manager and checkout orchestrator consume them.
func CartSession(c *gin.Context) cart.Session {
	return cart.Session{ID: SessionID(c), Auth: AuthState(c)}
}

// RequireUser guards endpoints that only make sense for an
// authenticated session (order history, order cancellation).
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		state := AuthState(c)
		if !state.Ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Session not ready, try again"})
			c.Abort()
			return
		}
		if state.IsGuest() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
