package payroll

import (
	"dayflow/internal/middleware"
	"dayflow/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	payrolls := r.Group("/payroll")
	payrolls.Use(middleware.AuthMiddleware())
	{
		payrolls.GET("/:id/salary",
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			h.GetSalary,
		)

		payrolls.PUT("/:id/salary",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "payroll", "update"),
			h.UpdateSalary,
		)

		payrolls.GET("/:id/slip",
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			h.GenerateSlip,
		)
	}
}
