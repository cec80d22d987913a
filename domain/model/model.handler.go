package model

import (
	"io"

	"pitboxBackend/auth"
	"pitboxBackend/utils"

	"github.com/gin-gonic/gin"
)

type (
	Handler interface {
		GetAll(ctx *gin.Context)
		Get(ctx *gin.Context)
		Create(ctx *gin.Context)
		Update(ctx *gin.Context)
		Delete(ctx *gin.Context)
		Stats(ctx *gin.Context)
		GetShared(ctx *gin.Context)
		Export(ctx *gin.Context)
		Import(ctx *gin.Context)
	}

	modelHandler struct {
		modelService Service
	}
)

func CreateHandler(modelService Service) Handler {
	return &modelHandler{
		modelService: modelService,
	}
}

func (h *modelHandler) GetAll(ctx *gin.Context) {
	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	result, err := h.modelService.GetAll(ctx, authUser)
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

func (h *modelHandler) Get(ctx *gin.Context) {
	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	result, err := h.modelService.Get(ctx, authUser, ctx.Param("modelId"))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

func (h *modelHandler) Create(ctx *gin.Context) {
	payload := ModelIn{}
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(utils.CreateValidationError(err))
		return
	}

	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	result, err := h.modelService.Create(ctx, authUser, payload)
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

func (h *modelHandler) Update(ctx *gin.Context) {
	payload := ModelUpdateIn{}
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(utils.CreateValidationError(err))
		return
	}

	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	if err := h.modelService.Update(ctx, authUser, ctx.Param("modelId"), payload); err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse[any](nil))
}

func (h *modelHandler) Delete(ctx *gin.Context) {
	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	deleted, err := h.modelService.Delete(ctx, authUser, ctx.Param("modelId"))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(deleted))
}

func (h *modelHandler) Stats(ctx *gin.Context) {
	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	result, err := h.modelService.Stats(ctx, authUser)
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

func (h *modelHandler) GetShared(ctx *gin.Context) {
	var requester *auth.AuthenticatedUser
	if value, ok := ctx.Get(auth.ContextUserKey); ok {
		authUser := value.(auth.AuthenticatedUser)
		requester = &authUser
	}

	result, err := h.modelService.GetShared(ctx, ctx.Param("slug"), requester)
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

func (h *modelHandler) Export(ctx *gin.Context) {
	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	result, err := h.modelService.Export(ctx, authUser, ctx.Param("modelId"))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

func (h *modelHandler) Import(ctx *gin.Context) {
	payload, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(utils.ErrInvalidImport))
		return
	}

	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	result, err := h.modelService.Import(ctx, authUser, payload)
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}
