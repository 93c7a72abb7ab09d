package orderControllers

import (
	"errors"
	"net/http"

	"github.com/bookbazaar/storefront-api/backend"
	"github.com/bookbazaar/storefront-api/middleware"
	"github.com/gin-gonic/gin"
)

// GET /orders/:orderID
// Works for both sessions: guests reach their confirmation page with
// the order id from checkout, users send their token along.
func GetOrder(api *backend.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		order, err := api.GetOrder(c.Request.Context(), middleware.AuthState(c).Token, orderID)
		if err != nil {
			writeOrderError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /orders/mine (authenticated)
func ListMyOrders(api *backend.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := api.ListMyOrders(c.Request.Context(), middleware.AuthState(c).Token)
		if err != nil {
			writeOrderError(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// POST /orders/:orderID/cancel (authenticated)
func CancelOrder(api *backend.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		if err := api.CancelOrder(c.Request.Context(), middleware.AuthState(c).Token, orderID); err != nil {
			writeOrderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order cancelled"})
	}
}

func writeOrderError(c *gin.Context, err error) {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.StatusCode, gin.H{"error": apiErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
