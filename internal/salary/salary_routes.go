package salary

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
	salaries := r.Group("/salaries")
	salaries.Use(middleware.AuthMiddleware())
	salaries.Use(middleware.ContextLogger(logger))
	{
		read := middleware.RBACAuthorize(rbacService, "salary", "read")

		salaries.GET("", middleware.RateLimitByUser(5, 20), read, handler.GetAll)
		salaries.GET("/employee/:employeeId", middleware.RateLimitByUser(3, 10), read, handler.GetHistoryByEmployee)
		salaries.GET("/employee/:employeeId/max", middleware.RateLimitByUser(3, 10), read, handler.GetMaxForEmployee)
		salaries.GET("/employee/:employeeId/avg", middleware.RateLimitByUser(3, 10), read, handler.GetAvgForEmployee)
		salaries.GET("/department/:departmentId", middleware.RateLimitByUser(3, 10), read, handler.GetByDepartment)
		salaries.GET("/department/:departmentId/max", middleware.RateLimitByUser(3, 10), read, handler.GetMaxForDepartment)
		salaries.GET("/amount-range", middleware.RateLimitByUser(3, 10), read, handler.GetByAmountRange)
		salaries.GET("/paid", middleware.RateLimitByUser(3, 10), read, handler.GetByPaymentDateRange)
		salaries.GET("/with-bonus", middleware.RateLimitByUser(3, 10), read, handler.GetWithBonus)
		salaries.GET("/without-bonus", middleware.RateLimitByUser(3, 10), read, handler.GetWithoutBonus)
		salaries.GET("/top-amount", middleware.RateLimitByUser(3, 10), read, handler.GetTopByAmount)
		salaries.GET("/top-bonus", middleware.RateLimitByUser(3, 10), read, handler.GetTopByBonus)
		salaries.GET("/min", middleware.RateLimitByUser(3, 10), read, handler.GetMinAmount)
		salaries.GET("/max", middleware.RateLimitByUser(3, 10), read, handler.GetMaxAmount)
		salaries.GET("/monthly-stats", middleware.RateLimitByUser(3, 10), read, handler.GetMonthlyStats)
		salaries.GET("/report/:employeeId", middleware.RateLimitByUser(1, 3), read, handler.GetReport)
		salaries.GET("/:id", middleware.RateLimitByUser(3, 10), read, handler.GetByID)

		salaries.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "salary", "create"),
			handler.Create,
		)
		salaries.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "salary", "update"),
			handler.Update,
		)
		salaries.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "salary", "delete"),
			handler.Delete,
		)
	}
}
