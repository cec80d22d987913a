package feedback

import (
	"pitboxBackend/auth"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(route *gin.Engine, handler Handler, authManager auth.AuthManager) {
	routes := route.Group("/feedback", authManager.AuthenticatorMiddleware())
	{
		routes.GET("", handler.Get)
		routes.POST("", handler.Create)
		routes.DELETE("/:postId", handler.Delete)
		routes.POST("/:postId/vote", handler.Vote)
		routes.DELETE("/:postId/vote", handler.Unvote)
	}
}
