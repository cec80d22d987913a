package photo

import (
	"pitboxBackend/auth"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(route *gin.Engine, handler Handler, authManager auth.AuthManager) {
	routes := route.Group("/models/:modelId/photos", authManager.AuthenticatorMiddleware())
	{
		routes.GET("", handler.Get)
		routes.POST("", handler.Upload)
		routes.PATCH("/:photoId", handler.Update)
		routes.DELETE("/:photoId", handler.Delete)
		routes.POST("/:photoId/box-art", handler.SetBoxArt)
	}

	route.DELETE("/models/:modelId/box-art", authManager.AuthenticatorMiddleware(), handler.ClearBoxArt)
}
