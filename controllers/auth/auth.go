package authControllers

import (
	"errors"
	"net/http"

	"github.com/bookbazaar/storefront-api/auth"
	"github.com/bookbazaar/storefront-api/backend"
	"github.com/bookbazaar/storefront-api/middleware"
	"github.com/gin-gonic/gin"
)

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type registerInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// POST /auth/login
func Login(manager *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input loginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		user, err := manager.Login(c.Request.Context(), middleware.SessionID(c), input.Email, input.Password)
		if err != nil {
			writeBackendError(c, err, http.StatusUnauthorized)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// POST /auth/register
func Register(manager *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input registerInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := manager.Register(c.Request.Context(), input.Name, input.Email, input.Password); err != nil {
			writeBackendError(c, err, http.StatusBadRequest)
			return
		}
		// No auto-login: the storefront sends the user to the login page.
		c.JSON(http.StatusCreated, gin.H{"message": "Account created, please log in"})
	}
}

// POST /auth/logout
func Logout(manager *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		manager.Logout(c.Request.Context(), middleware.SessionID(c))
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

// GET /auth/me
// For logged-in sessions the profile is re-read from the backend, so a
// renamed or deactivated account shows up without re-login and a dead
// token is caught here instead of mid-checkout.
func Me(api *backend.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := middleware.AuthState(c)
		if state.IsGuest() {
			c.JSON(http.StatusOK, gin.H{"user": nil, "isLoggedIn": false})
			return
		}

		user, err := api.Profile(c.Request.Context(), state.Token)
		if err != nil {
			var apiErr *backend.APIError
			if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired, please log in again"})
				return
			}
			// Backend hiccup: the stored copy still identifies the session.
			user = state.User
		}
		c.JSON(http.StatusOK, gin.H{"user": user, "isLoggedIn": true})
	}
}

// POST /auth/forgot-password
func ForgotPassword(api *backend.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email string `json:"email" binding:"required,email"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if err := api.ForgotPassword(c.Request.Context(), input.Email); err != nil {
			writeBackendError(c, err, http.StatusBadGateway)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Password reset email sent"})
	}
}

// POST /auth/reset-password
func ResetPassword(api *backend.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Token    string `json:"token" binding:"required"`
			Password string `json:"password" binding:"required,min=6"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if err := api.ResetPassword(c.Request.Context(), input.Token, input.Password); err != nil {
			writeBackendError(c, err, http.StatusBadRequest)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Password updated, please log in"})
	}
}

// POST /auth/set-guest-password
func SetGuestPassword(api *backend.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required,min=6"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if err := api.SetGuestPassword(c.Request.Context(), input.Email, input.Password); err != nil {
			writeBackendError(c, err, http.StatusBadRequest)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Account ready, please log in"})
	}
}

// writeBackendError forwards the backend's own status and message when
// available, instead of flattening everything to one code.
func writeBackendError(c *gin.Context, err error, fallback int) {
	if apiErr, ok := err.(*backend.APIError); ok {
		c.JSON(apiErr.StatusCode, gin.H{"error": apiErr.Message})
		return
	}
	c.JSON(fallback, gin.H{"error": err.Error()})
}
