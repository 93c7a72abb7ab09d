package backend

import (
	"context"
	"net/http"
)

// ContactMessage is a storefront contact-form submission.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

func (c *Client) SubmitContact(ctx context.Context, msg ContactMessage) error {
	return c.do(ctx, http.MethodPost, "/api/contact", "", msg, nil)
}
