package auth

import (
	"go-leavedesk/internal/domain"
	"go-leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	auth := r.Group("/auth")
	{
		auth.GET("/me", middleware.AuthMiddleware(), middleware.RateLimitByUser(2, 5), handler.Me)
		auth.POST("/login", middleware.RateLimitByIP(0.08, 5), handler.Login)
		auth.POST("/refresh", handler.RefreshToken)
		auth.POST("/logout", middleware.RateLimitByUser(2, 5), handler.Logout)
		// Account provisioning is an HR/admin task.
		auth.POST("/register",
			middleware.AuthMiddleware(),
			middleware.RoleMiddleware(domain.RoleHR, domain.RoleAdmin),
			handler.Register,
		)
	}
}
