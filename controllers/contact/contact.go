package contactControllers

import (
	"errors"
	"net/http"

	"github.com/bookbazaar/storefront-api/backend"
	"github.com/gin-gonic/gin"
)

type contactInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

// POST /contact
func Submit(api *backend.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input contactInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		err := api.SubmitContact(c.Request.Context(), backend.ContactMessage{
			Name:    input.Name,
			Email:   input.Email,
			Subject: input.Subject,
			Message: input.Message,
		})
		if err != nil {
			var apiErr *backend.APIError
			if errors.As(err, &apiErr) {
				c.JSON(apiErr.StatusCode, gin.H{"error": apiErr.Message})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Message sent"})
	}
}
