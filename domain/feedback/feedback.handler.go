package feedback

import (
	"pitboxBackend/auth"
	"pitboxBackend/utils"

	"github.com/gin-gonic/gin"
)

type (
	Handler interface {
		Get(ctx *gin.Context)
		Create(ctx *gin.Context)
		Delete(ctx *gin.Context)
		Vote(ctx *gin.Context)
		Unvote(ctx *gin.Context)
	}

	feedbackHandler struct {
		feedbackService Service
	}
)

func CreateHandler(feedbackService Service) Handler {
	return &feedbackHandler{
		feedbackService: feedbackService,
	}
}

func (h *feedbackHandler) Get(ctx *gin.Context) {
	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	result, err := h.feedbackService.Get(ctx, authUser)
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

func (h *feedbackHandler) Create(ctx *gin.Context) {
	payload := FeedbackIn{}
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(utils.CreateValidationError(err))
		return
	}

	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	result, err := h.feedbackService.Create(ctx, authUser, payload)
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

func (h *feedbackHandler) Delete(ctx *gin.Context) {
	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	if err := h.feedbackService.Delete(ctx, authUser, ctx.Param("postId")); err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse[any](nil))
}

func (h *feedbackHandler) Vote(ctx *gin.Context) {
	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	if err := h.feedbackService.Vote(ctx, authUser, ctx.Param("postId")); err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse[any](nil))
}

func (h *feedbackHandler) Unvote(ctx *gin.Context) {
	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	if err := h.feedbackService.Unvote(ctx, authUser, ctx.Param("postId")); err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse[any](nil))
}
