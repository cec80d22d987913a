package buildlog

import (
	"pitboxBackend/auth"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(route *gin.Engine, handler Handler, authManager auth.AuthManager) {
	routes := route.Group("/models/:modelId/logs", authManager.AuthenticatorMiddleware())
	{
		routes.GET("", handler.Get)
		routes.POST("", handler.Create)
		routes.PATCH("/:entryId", handler.Update)
		routes.DELETE("/:entryId", handler.Delete)
		routes.PUT("/:entryId/photos/:photoId", handler.LinkPhoto)
		routes.DELETE("/:entryId/photos/:photoId", handler.UnlinkPhoto)
	}
}
