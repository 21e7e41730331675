package document

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
	documents := r.Group("/documents")
	documents.Use(middleware.AuthMiddleware())
	documents.Use(middleware.ContextLogger(logger))
	{
		read := middleware.RBACAuthorize(rbacService, "document", "read")

		documents.GET("/employee/:employeeId", middleware.RateLimitByUser(3, 10), read, handler.ListByEmployee)
		documents.GET("/:id/download", middleware.RateLimitByUser(1, 5), read, handler.Download)

		documents.POST("/employee/:employeeId",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "document", "create"),
			handler.Upload,
		)
		documents.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "document", "delete"),
			handler.Delete,
		)
	}
}
