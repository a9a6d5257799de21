package attendance

import (
	"dayflow/internal/middleware"
	"dayflow/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	attendances := r.Group("/attendance")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.GET("",
			middleware.RBACAuthorize(rbacService, "attendance", "read"),
			h.GetAll,
		)
		attendances.POST("/check",
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			h.CheckInOut,
		)
		attendances.POST("/mark",
			middleware.RBACAuthorize(rbacService, "attendance", "mark"),
			h.Mark,
		)
	}
}
