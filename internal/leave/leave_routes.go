package leave

import (
	"dayflow/internal/middleware"
	"dayflow/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rdb *redis.Client) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "leave", "create"),
			middleware.Idempotency(rdb),
			h.Apply,
		)

		leaves.GET("",
			middleware.RBACAuthorize(rbacService, "leave", "read"),
			h.GetAll,
		)

		leaves.GET("/balance",
			middleware.RBACAuthorize(rbacService, "leave", "read"),
			h.GetBalance,
		)

		leaves.POST("/:id/approve",
			middleware.RBACAuthorize(rbacService, "leave", "decide"),
			h.Approve,
		)

		leaves.POST("/:id/reject",
			middleware.RBACAuthorize(rbacService, "leave", "decide"),
			h.Reject,
		)
	}
}
