package routes

import (
	authControllers "github.com/bookbazaar/storefront-api/controllers/auth"
	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes registers all "/api/auth/*" endpoints.
func SetupAuthRoutes(api *gin.RouterGroup, d Deps) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authControllers.Login(d.Auth))
		authGroup.POST("/register", authControllers.Register(d.Auth))
		authGroup.POST("/logout", authControllers.Logout(d.Auth))
		authGroup.GET("/me", authControllers.Me(d.API))

		authGroup.POST("/forgot-password", authControllers.ForgotPassword(d.API))
		authGroup.POST("/reset-password", authControllers.ResetPassword(d.API))
		authGroup.POST("/set-guest-password", authControllers.SetGuestPassword(d.API))
	}
}
