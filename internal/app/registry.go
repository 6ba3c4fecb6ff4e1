package app

import (
	"database/sql"

	"go-leavedesk/internal/auth"
	"go-leavedesk/internal/employee"
	"go-leavedesk/internal/leave"
	"go-leavedesk/internal/ledger"
	"go-leavedesk/internal/messaging/kafka"
	"go-leavedesk/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB, db)
	leaveRepo := leave.NewRepository(gormDB, db)
	ledgerRepo := ledger.NewRepository(gormDB, db)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	ledgerService := ledger.NewService(ledgerRepo, rdb)
	employeeService := employee.NewService(db, employeeRepo, ledgerRepo, counterRepo)
	authService := auth.NewService(authRepo, employeeRepo)
	leaveService := leave.NewServiceWithOutbox(db, leaveRepo, ledgerService, ledgerRepo, outboxRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveHandler := leave.NewHandler(leaveService, ledgerService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler)
		leave.RegisterRoutes(api, leaveHandler, rdb)
	}

	return nil
}
