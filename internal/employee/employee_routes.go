package employee

import (
	"github.com/Qoxxoraliyev/employee-management/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	logger *zap.Logger,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	employees.Use(middleware.ContextLogger(logger))
	{
		read := middleware.RBACAuthorize(rbacService, "employee", "read")

		employees.GET("", middleware.RateLimitByUser(5, 20), read, handler.GetAll)
		employees.GET("/page", middleware.RateLimitByUser(5, 20), read, handler.GetPage)
		employees.GET("/search", middleware.RateLimitByUser(3, 10), read, handler.Search)
		employees.GET("/search/name", middleware.RateLimitByUser(3, 10), read, handler.SearchByName)
		employees.GET("/search/phone", middleware.RateLimitByUser(3, 10), read, handler.SearchByPhone)
		employees.GET("/status/:status", middleware.RateLimitByUser(3, 10), read, handler.GetByStatus)
		employees.GET("/gender/:gender", middleware.RateLimitByUser(3, 10), read, handler.GetByGender)
		employees.GET("/department/:name", middleware.RateLimitByUser(3, 10), read, handler.GetByDepartmentName)
		employees.GET("/by-status-department", middleware.RateLimitByUser(3, 10), read, handler.GetByStatusAndDepartment)
		employees.GET("/by-department-position", middleware.RateLimitByUser(3, 10), read, handler.GetByDepartmentAndPosition)
		employees.GET("/hired", middleware.RateLimitByUser(3, 10), read, handler.GetByHireDateRange)
		employees.GET("/born", middleware.RateLimitByUser(3, 10), read, handler.GetByBirthDateRange)
		employees.GET("/salary-range", middleware.RateLimitByUser(3, 10), read, handler.GetBySalaryRange)
		employees.GET("/top-paid", middleware.RateLimitByUser(3, 10), read, handler.GetTopPaid)
		employees.GET("/count", middleware.RateLimitByUser(3, 10), read, handler.GetCount)
		employees.GET("/stats/active-percentage", middleware.RateLimitByUser(3, 10), read, handler.GetActivePercentage)
		employees.GET("/stats/new-last-30-days", middleware.RateLimitByUser(3, 10), read, handler.GetNewLast30Days)
		employees.GET("/:id", middleware.RateLimitByUser(3, 10), read, handler.GetByID)
		employees.GET("/:id/age", middleware.RateLimitByUser(3, 10), read, handler.GetAge)

		if redisClient != nil {
			employees.POST("",
				middleware.RateLimitByUser(0.5, 2),
				middleware.Idempotency(redisClient),
				middleware.RBACAuthorize(rbacService, "employee", "create"),
				handler.Create,
			)
		} else {
			employees.POST("",
				middleware.RateLimitByUser(0.5, 2),
				middleware.RBACAuthorize(rbacService, "employee", "create"),
				handler.Create,
			)
		}
		employees.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "employee", "update"),
			handler.Update,
		)
		employees.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "employee", "delete"),
			handler.Delete,
		)
	}
}
