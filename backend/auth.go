package backend

import (
	"context"
	"errors"
	"net/http"

	"github.com/bookbazaar/storefront-api/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse tolerates both reply shapes the backend has been seen
// using: user/token at the top level, or nested under "data".
type loginResponse struct {
	User  *models.User   `json:"user"`
	Token string         `json:"token"`
	Data  *loginResponse `json:"data"`
}

// Login authenticates against the backend and returns the user together
// with the opaque bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, "", err
	}
	user, token := resp.User, resp.Token
	if (user == nil || token == "") && resp.Data != nil {
		user, token = resp.Data.User, resp.Data.Token
	}
	if user == nil || token == "" {
		return nil, "", errors.New("backend: login response carried no user or token")
	}
	return user, token, nil
}

// Register creates an account. It does not log the user in; callers
// redirect to login on success.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register", "", registerRequest{Name: name, Email: email, Password: password}, nil)
}

func (c *Client) Profile(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	payload := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/api/auth/forgot-password", "", payload, nil)
}

func (c *Client) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	payload := map[string]string{"token": resetToken, "password": newPassword}
	return c.do(ctx, http.MethodPost, "/api/auth/reset-password", "", payload, nil)
}

// SetGuestPassword converts a guest buyer into an account holder after a
// guest checkout.
func (c *Client) SetGuestPassword(ctx context.Context, email, password string) error {
	payload := map[string]string{"email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/api/auth/set-guest-password", "", payload, nil)
}
