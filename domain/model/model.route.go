package model

import (
	"pitboxBackend/auth"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(route *gin.Engine, handler Handler, authManager auth.AuthManager) {
	routes := route.Group("/models", authManager.AuthenticatorMiddleware())
	{
		routes.GET("", handler.GetAll)
		routes.POST("", handler.Create)
		routes.GET("/stats", handler.Stats)
		routes.POST("/import", handler.Import)
		routes.GET("/:modelId", handler.Get)
		routes.PATCH("/:modelId", handler.Update)
		routes.DELETE("/:modelId", handler.Delete)
		routes.GET("/:modelId/export", handler.Export)
	}

	route.GET("/shared/:slug", authManager.OptionalAuthenticatorMiddleware(), handler.GetShared)
}
