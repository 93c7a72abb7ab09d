package routes

import (
	productControllers "github.com/bookbazaar/storefront-api/controllers/product"
	"github.com/gin-gonic/gin"
)

// SetupCatalogRoutes registers the read-only product and category
// endpoints proxied from the backend catalog.
func SetupCatalogRoutes(api *gin.RouterGroup, d Deps) {
	productGroup := api.Group("/products")
	{
		productGroup.GET("", productControllers.GetProducts(d.API, d.AssetBaseURL))
		productGroup.GET("/search", productControllers.SearchProducts(d.API, d.AssetBaseURL))
		productGroup.GET("/slug/:slug", productControllers.GetProductBySlug(d.API, d.AssetBaseURL))
		productGroup.GET("/:id", productControllers.GetProductByID(d.API, d.AssetBaseURL))
	}

	categoryGroup := api.Group("/categories")
	{
		categoryGroup.GET("", productControllers.GetCategories(d.API, false))
		categoryGroup.GET("/active", productControllers.GetCategories(d.API, true))
	}
}
