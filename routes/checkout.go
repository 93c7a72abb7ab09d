package routes

import (
	checkoutControllers "github.com/bookbazaar/storefront-api/controllers/checkout"
	"github.com/gin-gonic/gin"
)

// SetupCheckoutRoutes registers the checkout endpoints for both the
// Razorpay flow and cash on delivery.
func SetupCheckoutRoutes(api *gin.RouterGroup, d Deps) {
	checkoutGroup := api.Group("/checkout")
	{
		checkoutGroup.POST("/razorpay/begin", checkoutControllers.BeginRazorpay(d.Checkout))
		checkoutGroup.POST("/razorpay/verify", checkoutControllers.VerifyRazorpay(d.Checkout))
		checkoutGroup.POST("/razorpay/fail", checkoutControllers.FailRazorpay(d.Checkout))
		checkoutGroup.POST("/razorpay/cancel", checkoutControllers.CancelRazorpay(d.Checkout))
		checkoutGroup.POST("/cod", checkoutControllers.PlaceCOD(d.Checkout))
	}
}
