package leave

import (
	"go-leavedesk/internal/domain"
	"go-leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RegisterRoutes wires the leave surface. The :id segment is a request id on
// /status and an employee id on /history and /balances; gin requires one
// wildcard name per position, so both share :id.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("/request", middleware.Idempotency(rdb), handler.Submit)
		leaves.GET("", middleware.RoleMiddleware(domain.RoleHR, domain.RoleAdmin), handler.GetAll)
		leaves.GET("/:id", handler.GetById)
		leaves.PATCH("/:id/status", handler.UpdateStatus)
		leaves.GET("/:id/history", handler.History)
		leaves.GET("/:id/balances", handler.Balances)
	}
}
