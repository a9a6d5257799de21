package auth

import (
	"dayflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", middleware.RateLimitByIP(0.2, 3), h.Register)
		authGroup.POST("/login", middleware.RateLimitByIP(1, 5), h.Login)
		authGroup.GET("/me", middleware.AuthMiddleware(), h.GetMe)
	}
}
