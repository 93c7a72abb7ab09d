package routes

import (
	orderControllers "github.com/bookbazaar/storefront-api/controllers/order"
	"github.com/bookbazaar/storefront-api/middleware"
	"github.com/gin-gonic/gin"
)

// SetupOrderRoutes registers order lookup and tracking endpoints.
// Single-order lookup stays open so guests can reach their order
// confirmation page; listing and cancelling require a logged-in user.
func SetupOrderRoutes(api *gin.RouterGroup, d Deps) {
	orderGroup := api.Group("/orders")
	{
		orderGroup.GET("/mine", middleware.RequireUser(), orderControllers.ListMyOrders(d.API))
		orderGroup.GET("/:orderID", orderControllers.GetOrder(d.API))
		orderGroup.POST("/:orderID/cancel", middleware.RequireUser(), orderControllers.CancelOrder(d.API))
		orderGroup.GET("/:orderID/track", orderControllers.TrackOrder(d.API))
	}
}
