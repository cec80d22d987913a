package user

import (
	"pitboxBackend/auth"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(route *gin.Engine, handler Handler, authManager auth.AuthManager) {
	routes := route.Group("/users")
	{
		routes.POST("/register", handler.Register)
		routes.POST("/logout", handler.Logout)
		routes.POST("/login/native", handler.LoginNative)
		routes.GET("/login/openid", handler.LoginOpenId)
		routes.GET("/login/config", handler.AuthConfig)
		routes.GET("/login/success", handler.LoginOpenIdSuccess)
		routes.GET("/login/refresh", handler.RefreshToken)

		routes.GET("/me", authManager.AuthenticatorMiddleware(), handler.Me)
		routes.PATCH("/me", authManager.AuthenticatorMiddleware(), handler.UpdateMe)
		routes.POST("/me/quota", authManager.AuthenticatorMiddleware(), handler.RedeemCharge)
	}

	adminRoutes := route.Group("/admin/users", authManager.AuthenticatorMiddleware())
	{
		adminRoutes.GET("", handler.AdminGetUsers)
		adminRoutes.PATCH("/:userId", handler.AdminUpdateUser)
		adminRoutes.DELETE("/:userId", handler.AdminDeleteUser)
	}

	route.GET("/admin/stats", authManager.AuthenticatorMiddleware(), handler.AdminStats)
}
