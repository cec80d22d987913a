package comment

import (
	"pitboxBackend/auth"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(route *gin.Engine, handler Handler, authManager auth.AuthManager) {
	routes := route.Group("/models/:modelId/comments")
	{
		routes.GET("", authManager.OptionalAuthenticatorMiddleware(), handler.Get)
		routes.POST("", authManager.AuthenticatorMiddleware(), handler.Create)
	}

	route.DELETE("/comments/:commentId", authManager.AuthenticatorMiddleware(), handler.Delete)
}
