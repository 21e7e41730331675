package user

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
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	users.Use(middleware.ContextLogger(logger))
	{
		read := middleware.RBACAuthorize(rbacService, "user", "read")

		users.GET("", middleware.RateLimitByUser(5, 20), read, handler.GetAll)
		users.GET("/search", middleware.RateLimitByUser(3, 10), read, handler.SearchByUsername)
		users.GET("/count", middleware.RateLimitByUser(3, 10), read, handler.GetCount)
		users.GET("/username/:username", middleware.RateLimitByUser(3, 10), read, handler.GetByUsername)
		users.GET("/role/:role", middleware.RateLimitByUser(3, 10), read, handler.GetByRole)
		users.GET("/:id", middleware.RateLimitByUser(3, 10), read, handler.GetByID)

		users.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "user", "create"),
			handler.Create,
		)
		users.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "user", "update"),
			handler.Update,
		)
		users.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "user", "delete"),
			handler.Delete,
		)
	}
}
