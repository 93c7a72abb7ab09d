package productControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/bookbazaar/storefront-api/backend"
	"github.com/bookbazaar/storefront-api/models"
	"github.com/gin-gonic/gin"
)

// Controllers here are thin pass-throughs to the backend catalog, plus
// asset-URL rewriting so the storefront serves absolute image links.

// GET /products
func GetProducts(api *backend.Client, assetBase string) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.Query("page"))
		limit, _ := strconv.Atoi(c.Query("limit"))

		list, err := api.ListProducts(c.Request.Context(), backend.ProductQuery{
			Search:   c.Query("search"),
			Category: c.Query("category"),
			Page:     page,
			Limit:    limit,
		})
		if err != nil {
			writeProductError(c, err)
			return
		}
		for i := range list.Products {
			rewriteAssetURLs(&list.Products[i], assetBase)
		}
		c.JSON(http.StatusOK, list)
	}
}

// GET /products/:id
func GetProductByID(api *backend.Client, assetBase string) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := api.GetProduct(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeProductError(c, err)
			return
		}
		rewriteAssetURLs(product, assetBase)
		c.JSON(http.StatusOK, product)
	}
}

// GET /products/slug/:slug
func GetProductBySlug(api *backend.Client, assetBase string) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := api.GetProductBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			writeProductError(c, err)
			return
		}
		rewriteAssetURLs(product, assetBase)
		c.JSON(http.StatusOK, product)
	}
}

// GET /products/search?q=
func SearchProducts(api *backend.Client, assetBase string) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		if query == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
			return
		}

		products, err := api.SearchProducts(c.Request.Context(), query)
		if err != nil {
			writeProductError(c, err)
			return
		}
		for i := range products {
			rewriteAssetURLs(&products[i], assetBase)
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /categories
// GET /categories/active
func GetCategories(api *backend.Client, activeOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			cats []models.Category
			err  error
		)
		if activeOnly {
			cats, err = api.ListActiveCategories(c.Request.Context())
		} else {
			cats, err = api.ListCategories(c.Request.Context())
		}
		if err != nil {
			writeProductError(c, err)
			return
		}
		c.JSON(http.StatusOK, cats)
	}
}

// rewriteAssetURLs prefixes relative image paths with the configured
// asset base. Absolute URLs pass through untouched.
func rewriteAssetURLs(p *models.Product, assetBase string) {
	if assetBase == "" {
		return
	}
	p.Image = absURL(p.Image, assetBase)
	for i, img := range p.Images {
		p.Images[i] = absURL(img, assetBase)
	}
	for i, color := range p.Colors {
		p.Colors[i].Image = absURL(color.Image, assetBase)
	}
}

func absURL(path, base string) string {
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

func writeProductError(c *gin.Context, err error) {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.StatusCode, gin.H{"error": apiErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
