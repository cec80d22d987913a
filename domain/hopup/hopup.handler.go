package hopup

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
	}

	hopUpHandler struct {
		hopUpService Service
	}
)

func CreateHandler(hopUpService Service) Handler {
	return &hopUpHandler{
		hopUpService: hopUpService,
	}
}

func (h *hopUpHandler) Get(ctx *gin.Context) {
	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	result, err := h.hopUpService.Get(ctx, authUser, ctx.Param("modelId"))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

func (h *hopUpHandler) Create(ctx *gin.Context) {
	payload := HopUpIn{}
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(utils.CreateValidationError(err))
		return
	}

	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	result, err := h.hopUpService.Create(ctx, authUser, ctx.Param("modelId"), payload)
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

func (h *hopUpHandler) Update(ctx *gin.Context) {
	payload := HopUpUpdateIn{}
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(utils.CreateValidationError(err))
		return
	}

	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	if err := h.hopUpService.Update(ctx, authUser, ctx.Param("modelId"), ctx.Param("partId"), payload); err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse[any](nil))
}

func (h *hopUpHandler) Delete(ctx *gin.Context) {
	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	if err := h.hopUpService.Delete(ctx, authUser, ctx.Param("modelId"), ctx.Param("partId")); err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse[any](nil))
}
