package comment

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
	}

	commentHandler struct {
		commentService Service
	}
)

func CreateHandler(commentService Service) Handler {
	return &commentHandler{
		commentService: commentService,
	}
}

func (h *commentHandler) Get(ctx *gin.Context) {
	var requester *auth.AuthenticatedUser
	if value, ok := ctx.Get(auth.ContextUserKey); ok {
		authUser := value.(auth.AuthenticatedUser)
		requester = &authUser
	}

	result, err := h.commentService.Get(ctx, requester, ctx.Param("modelId"))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

func (h *commentHandler) Create(ctx *gin.Context) {
	payload := CommentIn{}
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(utils.CreateValidationError(err))
		return
	}

	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	result, err := h.commentService.Create(ctx, authUser, ctx.Param("modelId"), payload)
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

func (h *commentHandler) Delete(ctx *gin.Context) {
	authUser := ctx.MustGet(auth.ContextUserKey).(auth.AuthenticatedUser)
	if err := h.commentService.Delete(ctx, authUser, ctx.Param("commentId")); err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse[any](nil))
}
