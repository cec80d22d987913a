package buildlog

import (
	"pitboxBackend/auth"
	"pitboxBackend/utils"

	"github.com/gin-gonic/gin"
)

type (
	Handler interface {
		Get(ctx *gin.Context)
		Create(ctx *gin.Context)
		Update(ctx *gin.Context)
		Delete(ctx *gin.Context)
		LinkPhoto(ctx *gin.Context)
		UnlinkPhoto(ctx *gin.Context)
	}

	buildLogHandler struct {
		buildLogService Service
	}
)

func CreateHandler(buildLogService Service) Handler {
	return &buildLogHandler{
		buildLogService: buildLogService,
	}
}

func (h *buildLogHandler) Get(ctx *gin.Context) {
	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	result, err := h.buildLogService.Get(ctx, authUser, ctx.Param("modelId"))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

func (h *buildLogHandler) Create(ctx *gin.Context) {
	payload := BuildLogIn{}
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(utils.CreateValidationError(err))
		return
	}

	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	result, err := h.buildLogService.Create(ctx, authUser, ctx.Param("modelId"), payload)
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

func (h *buildLogHandler) Update(ctx *gin.Context) {
	payload := BuildLogUpdateIn{}
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(utils.CreateValidationError(err))
		return
	}

	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	if err := h.buildLogService.Update(ctx, authUser, ctx.Param("modelId"), ctx.Param("entryId"), payload); err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse[any](nil))
}

func (h *buildLogHandler) Delete(ctx *gin.Context) {
	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	if err := h.buildLogService.Delete(ctx, authUser, ctx.Param("modelId"), ctx.Param("entryId")); err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse[any](nil))
}

func (h *buildLogHandler) LinkPhoto(ctx *gin.Context) {
	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	if err := h.buildLogService.LinkPhoto(ctx, authUser, ctx.Param("modelId"), ctx.Param("entryId"), ctx.Param("photoId")); err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse[any](nil))
}

func (h *buildLogHandler) UnlinkPhoto(ctx *gin.Context) {
	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	if err := h.buildLogService.UnlinkPhoto(ctx, authUser, ctx.Param("modelId"), ctx.Param("entryId"), ctx.Param("photoId")); err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse[any](nil))
}
