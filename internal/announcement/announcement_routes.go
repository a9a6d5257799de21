package announcement

import (
	"dayflow/internal/middleware"
	"dayflow/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	announcements := r.Group("/announcements")
	announcements.Use(middleware.AuthMiddleware())
	{
		announcements.GET("",
			middleware.RBACAuthorize(rbacService, "announcement", "read"),
			h.GetAll,
		)

		announcements.POST("",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "announcement", "create"),
			h.Create,
		)
	}
}
