package cartControllers

import (
	"errors"
	"net/http"

	"github.com/bookbazaar/storefront-api/backend"
	"github.com/bookbazaar/storefront-api/cart"
	"github.com/bookbazaar/storefront-api/middleware"
	"github.com/gin-gonic/gin"
)

type addItemInput struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Color     string `json:"color"`
}

type updateItemInput struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GET /cart
func GetCart(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, err := carts.Get(c.Request.Context(), middleware.CartSession(c))
		if err != nil {
			writeCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, current)
	}
}

// GET /cart/summary
func GetCartSummary(carts *cart.Manager, taxRate float64) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, err := carts.Get(c.Request.Context(), middleware.CartSession(c))
		if err != nil {
			writeCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"cart":    current,
			"summary": current.Summarize(taxRate),
		})
	}
}

// POST /cart/items
func AddToCart(carts *cart.Manager, api *backend.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input addItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		sess := middleware.CartSession(c)

		product, err := api.GetProduct(c.Request.Context(), input.ProductID)
		if err != nil {
			writeCartError(c, err)
			return
		}

		// Stock pre-check is a courtesy for guest carts; for user carts
		// the backend stays the authority on over-quantity adds.
		if sess.Auth.IsGuest() && input.Quantity > product.VariantStock(input.Color) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Not enough stock available"})
			return
		}

		updated, err := carts.Add(c.Request.Context(), sess, *product, input.Quantity, input.Color)
		if err != nil {
			writeCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// PUT /cart/items/:item_id
func UpdateCartItem(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID := c.Param("item_id")
		var input updateItemInput
		if err := c.ShouldBindJSON(&input); err != nil || input.Quantity == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: quantity is required"})
			return
		}

		updated, err := carts.UpdateItem(c.Request.Context(), middleware.CartSession(c), itemID, *input.Quantity)
		if err != nil {
			writeCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// DELETE /cart/items/:item_id
func RemoveCartItem(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		updated, err := carts.RemoveItem(c.Request.Context(), middleware.CartSession(c), c.Param("item_id"))
		if err != nil {
			writeCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// DELETE /cart
func ClearCart(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		updated, err := carts.Clear(c.Request.Context(), middleware.CartSession(c))
		if err != nil {
			writeCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// POST /cart/refresh
func RefreshCart(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, err := carts.Refresh(c.Request.Context(), middleware.CartSession(c))
		if err != nil {
			writeCartError(c, err)
			return
		}
		if current == nil {
			// Auth is still resolving; the refresh deliberately waited.
			c.JSON(http.StatusAccepted, gin.H{"message": "Auth state loading, cart not refreshed"})
			return
		}
		c.JSON(http.StatusOK, current)
	}
}

func writeCartError(c *gin.Context, err error) {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.StatusCode, gin.H{"error": apiErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
