package routes

import (
	cartControllers "github.com/bookbazaar/storefront-api/controllers/cart"
	"github.com/gin-gonic/gin"
)

// SetupCartRoutes registers all "/api/cart/*" endpoints. The same
// surface serves guest and authenticated sessions; the cart manager
// picks the storage behind it.
func SetupCartRoutes(api *gin.RouterGroup, d Deps) {
	cartGroup := api.Group("/cart")
	{
		cartGroup.GET("", cartControllers.GetCart(d.Carts))
		cartGroup.GET("/summary", cartControllers.GetCartSummary(d.Carts, d.TaxRate))
		cartGroup.POST("/items", cartControllers.AddToCart(d.Carts, d.API))
		cartGroup.PUT("/items/:item_id", cartControllers.UpdateCartItem(d.Carts))
		cartGroup.DELETE("/items/:item_id", cartControllers.RemoveCartItem(d.Carts))
		cartGroup.DELETE("", cartControllers.ClearCart(d.Carts))
		cartGroup.POST("/refresh", cartControllers.RefreshCart(d.Carts))
	}
}
