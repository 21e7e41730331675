package department

import (
	"github.com/Qoxxoraliyev/employee-management/internal/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	logger *zap.Logger,
) {
	departments := r.Group("/departments")
	departments.Use(middleware.AuthMiddleware())
	departments.Use(middleware.ContextLogger(logger))
	{
		read := middleware.RBACAuthorize(rbacService, "department", "read")

		departments.GET("", middleware.RateLimitByUser(5, 20), read, handler.GetAll)
		departments.GET("/search", middleware.RateLimitByUser(3, 10), read, handler.SearchByName)
		departments.GET("/by-manager", middleware.RateLimitByUser(3, 10), read, handler.GetByManager)
		departments.GET("/created", middleware.RateLimitByUser(3, 10), read, handler.GetByCreationDateRange)
		departments.GET("/employee-counts", middleware.RateLimitByUser(3, 10), read, handler.GetEmployeeCounts)
		departments.GET("/yearly-stats", middleware.RateLimitByUser(3, 10), read, handler.GetYearlyStats)
		departments.GET("/:id", middleware.RateLimitByUser(3, 10), read, handler.GetByID)
		departments.GET("/:id/avg-salary", middleware.RateLimitByUser(3, 10), read, handler.GetAverageSalary)
		departments.GET("/:id/max-salary", middleware.RateLimitByUser(3, 10), read, handler.GetMaxSalary)
		departments.GET("/:id/min-salary", middleware.RateLimitByUser(3, 10), read, handler.GetMinSalary)
		departments.GET("/:id/employee-count", middleware.RateLimitByUser(3, 10), read, handler.GetEmployeeCount)
		departments.GET("/:id/position-count", middleware.RateLimitByUser(3, 10), read, handler.GetPositionCount)
		departments.GET("/:id/yearly-stats", middleware.RateLimitByUser(3, 10), read, handler.GetYearlyStatsByDepartment)

		departments.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "department", "create"),
			handler.Create,
		)
		departments.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "department", "update"),
			handler.Update,
		)
		departments.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "department", "delete"),
			handler.Delete,
		)
	}
}
