package employee

import (
	"go-leavedesk/internal/domain"
	"go-leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", middleware.RoleMiddleware(domain.RoleHR, domain.RoleAdmin), handler.GetAll)
		// Ownership for non-HR readers is enforced in the handler.
		employees.GET("/:id", handler.GetById)
		employees.POST("", middleware.RoleMiddleware(domain.RoleHR, domain.RoleAdmin), handler.Create)
		employees.PUT("/:id", middleware.RoleMiddleware(domain.RoleHR, domain.RoleAdmin), handler.Update)
		employees.DELETE("/:id", middleware.RoleMiddleware(domain.RoleAdmin), handler.Delete)
	}
}
