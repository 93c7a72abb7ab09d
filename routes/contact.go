package routes

import (
	contactControllers "github.com/bookbazaar/storefront-api/controllers/contact"
	"github.com/gin-gonic/gin"
)

// SetupContactRoutes registers the contact form endpoint.
func SetupContactRoutes(api *gin.RouterGroup, d Deps) {
	api.POST("/contact", contactControllers.Submit(d.API))
}
