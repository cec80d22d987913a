package photo

import (
	"pitboxBackend/auth"
	"pitboxBackend/utils"

	"github.com/gin-gonic/gin"
)

type (
	Handler interface {
		Get(ctx *gin.Context)
		Upload(ctx *gin.Context)
		Update(ctx *gin.Context)
		Delete(ctx *gin.Context)
		SetBoxArt(ctx *gin.Context)
		ClearBoxArt(ctx *gin.Context)
	}

	photoHandler struct {
		photoService Service
	}
)

func CreateHandler(photoService Service) Handler {
	return &photoHandler{
		photoService: photoService,
	}
}

func (h *photoHandler) Get(ctx *gin.Context) {
	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	result, err := h.photoService.Get(ctx, authUser, ctx.Param("modelId"))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

func (h *photoHandler) Upload(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(utils.CreateValidationError(err))
		return
	}

	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	result, err := h.photoService.Upload(ctx, authUser, ctx.Param("modelId"), file, ctx.PostForm("caption"))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

func (h *photoHandler) Update(ctx *gin.Context) {
	payload := PhotoUpdateIn{}
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(utils.CreateValidationError(err))
		return
	}

	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	if err := h.photoService.Update(ctx, authUser, ctx.Param("modelId"), ctx.Param("photoId"), payload); err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse[any](nil))
}

func (h *photoHandler) Delete(ctx *gin.Context) {
	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	if err := h.photoService.Delete(ctx, authUser, ctx.Param("modelId"), ctx.Param("photoId")); err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse[any](nil))
}

func (h *photoHandler) SetBoxArt(ctx *gin.Context) {
	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	if err := h.photoService.SetBoxArt(ctx, authUser, ctx.Param("modelId"), ctx.Param("photoId")); err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse[any](nil))
}

func (h *photoHandler) ClearBoxArt(ctx *gin.Context) {
	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	if err := h.photoService.ClearBoxArt(ctx, authUser, ctx.Param("modelId")); err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse[any](nil))
}
