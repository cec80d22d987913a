package hopup

import (
	"pitboxBackend/auth"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(route *gin.Engine, handler Handler, authManager auth.AuthManager) {
	routes := route.Group("/models/:modelId/hopups", authManager.AuthenticatorMiddleware())
	{
		routes.GET("", handler.Get)
		routes.POST("", handler.Create)
		routes.PATCH("/:partId", handler.Update)
		routes.DELETE("/:partId", handler.Delete)
	}
}
