package main

import (
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/bookbazaar/storefront-api/auth"
	"github.com/bookbazaar/storefront-api/backend"
	"github.com/bookbazaar/storefront-api/cart"
	"github.com/bookbazaar/storefront-api/checkout"
	"github.com/bookbazaar/storefront-api/routes"
	"github.com/bookbazaar/storefront-api/storage"
)

func main() {
	log.Println("✅ Starting storefront API...")

	// Load environment variables
	_ = godotenv.Load()

	backendURL := os.Getenv("BACKEND_API_URL")
	if backendURL == "" {
		log.Fatal("❌ BACKEND_API_URL is required")
	}
	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		log.Fatal("❌ SESSION_SECRET is required")
	}

	// Session storage: Redis when configured, in-memory otherwise
	store := initStorage()

	api := backend.NewClient(backendURL)
	authManager := auth.NewManager(api, store)
	cartManager := cart.NewManager(api, store)
	orchestrator := checkout.NewOrchestrator(api, cartManager, store, checkout.Config{
		RazorpayKeyID: os.Getenv("RAZORPAY_KEY_ID"),
		Currency:      os.Getenv("RAZORPAY_CURRENCY"),
		StoreName:     os.Getenv("STORE_NAME"),
		ThemeColor:    os.Getenv("CHECKOUT_THEME_COLOR"),
	})

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, routes.Deps{
		API:           api,
		Auth:          authManager,
		Carts:         cartManager,
		Checkout:      orchestrator,
		SessionSecret: sessionSecret,
		AssetBaseURL:  os.Getenv("ASSET_BASE_URL"),
		TaxRate:       taxRate(),
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initStorage connects to Redis when REDIS_HOST is set. Without it the
// in-memory store keeps local development working, at the cost of
// sessions not surviving a restart.
func initStorage() storage.Store {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		log.Println("⚠️ REDIS_HOST not set, using in-memory session store")
		return storage.NewMemory()
	}

	store, err := storage.NewRedis(host, os.Getenv("REDIS_PASSWORD"))
	if err != nil {
		log.Fatalf("❌ Redis connection failed: %v", err)
	}
	log.Printf("✅ Connected to Redis at %s", host)
	return store
}

func allowedOrigins() []string {
	if origin := os.Getenv("FRONTEND_ORIGIN"); origin != "" {
		return []string{origin}
	}
	return []string{"*"}
}

func taxRate() float64 {
	raw := os.Getenv("CART_TAX_RATE")
	if raw == "" {
		return 0.18
	}
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatalf("❌ Invalid CART_TAX_RATE %q: %v", raw, err)
	}
	return rate
}
