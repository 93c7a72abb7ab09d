package routes

import (
	"github.com/bookbazaar/storefront-api/auth"
	"github.com/bookbazaar/storefront-api/backend"
	"github.com/bookbazaar/storefront-api/cart"
	"github.com/bookbazaar/storefront-api/checkout"
	"github.com/bookbazaar/storefront-api/middleware"
	"github.com/gin-gonic/gin"
)

// Deps is everything the route groups need, wired once in main.
type Deps struct {
	API           *backend.Client
	Auth          *auth.Manager
	Carts         *cart.Manager
	Checkout      *checkout.Orchestrator
	SessionSecret string
	AssetBaseURL  string
	TaxRate       float64
}

// SetupRoutes is the single entry-point that wires up all storefront
// route groups behind the session and auth-hydration middleware.
func SetupRoutes(r *gin.Engine, d Deps) {
	api := r.Group("/api")
	api.Use(middleware.Session(d.SessionSecret))
	api.Use(middleware.LoadAuth(d.Auth))

	SetupAuthRoutes(api, d)
	SetupCartRoutes(api, d)
	SetupCheckoutRoutes(api, d)
	SetupOrderRoutes(api, d)
	SetupCatalogRoutes(api, d)
	SetupContactRoutes(api, d)
}
