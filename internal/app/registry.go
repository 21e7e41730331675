package app

import (
	"database/sql"
	"os"

	"github.com/Qoxxoraliyev/employee-management/internal/auth"
	"github.com/Qoxxoraliyev/employee-management/internal/department"
	"github.com/Qoxxoraliyev/employee-management/internal/document"
	"github.com/Qoxxoraliyev/employee-management/internal/employee"
	"github.com/Qoxxoraliyev/employee-management/internal/messaging/kafka"
	"github.com/Qoxxoraliyev/employee-management/internal/rbac"
	"github.com/Qoxxoraliyev/employee-management/internal/salary"
	"github.com/Qoxxoraliyev/employee-management/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	salaryRepo := salary.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	documentRepo := document.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer, logger)

	// --- Services ---
	departmentService := department.NewService(db, departmentRepo, rdb, logger)
	employeeService := employee.NewService(db, employeeRepo, departmentRepo, outboxRepo, logger)
	salaryService := salary.NewService(db, salaryRepo, employeeRepo, logger)
	userService := user.NewService(db, userRepo, logger)
	authService := auth.NewService(userRepo, logger)

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	documentService, err := document.NewService(documentRepo, employeeRepo, uploadDir, logger)
	if err != nil {
		return err
	}

	// --- Handlers ---
	departmentHandler := department.NewHandler(departmentService, logger)
	employeeHandler := employee.NewHandlerWithRedis(employeeService, rdb, logger)
	salaryHandler := salary.NewHandler(salaryService, logger)
	userHandler := user.NewHandler(userService, logger)
	authHandler := auth.NewHandler(authService, logger)
	documentHandler := document.NewHandler(documentService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, logger)
		department.RegisterRoutes(api, departmentHandler, rbacService, logger)
		employee.RegisterRoutes(api, employeeHandler, rbacService, logger, rdb)
		salary.RegisterRoutes(api, salaryHandler, rbacService, logger)
		user.RegisterRoutes(api, userHandler, rbacService, logger)
		document.RegisterRoutes(api, documentHandler, rbacService, logger)
	}

	return nil
}
