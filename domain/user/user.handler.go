package user

import (
	"net/http"

	"pitboxBackend/auth"
	"pitboxBackend/utils"

	"github.com/gin-gonic/gin"
)

type (
	Handler interface {
		Register(ctx *gin.Context)
		LoginNative(ctx *gin.Context)
		LoginOpenId(ctx *gin.Context)
		LoginOpenIdSuccess(ctx *gin.Context)
		RefreshToken(ctx *gin.Context)
		AuthConfig(ctx *gin.Context)
		Logout(ctx *gin.Context)

		Me(ctx *gin.Context)
		UpdateMe(ctx *gin.Context)
		RedeemCharge(ctx *gin.Context)

		AdminGetUsers(ctx *gin.Context)
		AdminStats(ctx *gin.Context)
		AdminUpdateUser(ctx *gin.Context)
		AdminDeleteUser(ctx *gin.Context)
	}

	userHandler struct {
		userService Service
	}
)

func CreateHandler(userService Service) Handler {
	return &userHandler{
		userService: userService,
	}
}

func (h *userHandler) Register(ctx *gin.Context) {
	payload := RegisterIn{}
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(utils.CreateValidationError(err))
		return
	}

	authToken, accessToken, err := h.userService.Register(ctx, payload)
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	setSessionCookies(ctx, authToken, accessToken)
	ctx.JSON(utils.CreateOkResponse[any](nil))
}

func (h *userHandler) LoginNative(ctx *gin.Context) {
	payload := CredentialsIn{}
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(utils.CreateErrorResponse(utils.ErrInvalidCredentials))
		return
	}

	authToken, accessToken, err := h.userService.LoginNative(ctx, payload)
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	setSessionCookies(ctx, authToken, accessToken)
	ctx.JSON(utils.CreateOkResponse[any](nil))
}

func (h *userHandler) LoginOpenId(ctx *gin.Context) {
	url, err := h.userService.GetAuthCodeURL(ctx.Request.Referer())
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	http.Redirect(ctx.Writer, ctx.Request, url, http.StatusFound)
}

func (h *userHandler) LoginOpenIdSuccess(ctx *gin.Context) {
	authToken, accessToken, err := h.userService.AuthenticateWithCode(ctx, ctx.Query("code"))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	setSessionCookies(ctx, authToken, accessToken)
	http.Redirect(ctx.Writer, ctx.Request, ctx.Query("state"), http.StatusFound)
}

func (h *userHandler) RefreshToken(ctx *gin.Context) {
	authToken, err := ctx.Cookie(auth.AuthTokenCookie)
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(utils.ErrUnauthorized))
		return
	}

	accessToken, err := h.userService.RefreshAccessToken(authToken)
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.SetCookie(auth.AccessTokenCookie, accessToken, 0, "/", "", false, false)
	ctx.JSON(utils.CreateOkResponse(accessToken))
}

func (h *userHandler) AuthConfig(ctx *gin.Context) {
	ctx.JSON(utils.CreateOkResponse(h.userService.AuthConfig()))
}

func (h *userHandler) Logout(ctx *gin.Context) {
	ctx.SetCookie(auth.AuthTokenCookie, "", -1, "/", "", false, true)
	ctx.SetCookie(auth.AccessTokenCookie, "", -1, "/", "", false, false)
	ctx.JSON(utils.CreateOkResponse[any](nil))
}

func (h *userHandler) Me(ctx *gin.Context) {
	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	result, err := h.userService.GetProfile(ctx, authUser)
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

func (h *userHandler) UpdateMe(ctx *gin.Context) {
	payload := ProfileUpdateIn{}
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(utils.CreateValidationError(err))
		return
	}

	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	if err := h.userService.UpdateProfile(ctx, authUser, payload); err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse[any](nil))
}

func (h *userHandler) RedeemCharge(ctx *gin.Context) {
	payload := RedeemChargeIn{}
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(utils.CreateValidationError(err))
		return
	}

	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	if err := h.userService.RedeemCharge(ctx, authUser, payload); err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse[any](nil))
}

func (h *userHandler) AdminGetUsers(ctx *gin.Context) {
	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	result, err := h.userService.GetAll(ctx, authUser)
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

func (h *userHandler) AdminStats(ctx *gin.Context) {
	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	result, err := h.userService.AdminStats(ctx, authUser)
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

func (h *userHandler) AdminUpdateUser(ctx *gin.Context) {
	payload := AdminUserUpdateIn{}
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(utils.CreateValidationError(err))
		return
	}

	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	if err := h.userService.AdminUpdate(ctx, authUser, ctx.Param("userId"), payload); err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse[any](nil))
}

func (h *userHandler) AdminDeleteUser(ctx *gin.Context) {
	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	if err := h.userService.AdminDelete(ctx, authUser, ctx.Param("userId")); err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse[any](nil))
}

func setSessionCookies(ctx *gin.Context, authToken string, accessToken string) {
	ctx.SetCookie(auth.AuthTokenCookie, authToken, 0, "/", "", false, true)
	ctx.SetCookie(auth.AccessTokenCookie, accessToken, 0, "/", "", false, false)
}
