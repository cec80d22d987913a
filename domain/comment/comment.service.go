package comment

import (
	"context"

	"pitboxBackend/auth"
	"pitboxBackend/domain/user"
	"pitboxBackend/utils"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

type (
	// ModelResolver applies the sharing gate: a model resolves only when
	// the requester may currently see it (owner, or shared under the
	// owner's visibility preference). Implemented by the model service
	// and evaluated per request, never cached.
	ModelResolver interface {
		ResolveVisible(ctx context.Context, modelId string, requester *auth.AuthenticatedUser) (uint, error)
	}

	UserResolver interface {
		GetByUuid(ctx context.Context, userId string) (*user.User, error)
	}

	Service interface {
		Get(ctx *gin.Context, requester *auth.AuthenticatedUser, modelId string) ([]CommentOut, error)
		Create(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string, req CommentIn) (string, error)
		Delete(ctx *gin.Context, authUser auth.AuthenticatedUser, commentId string) error
	}

	commentService struct {
		commentRepo   Repository
		modelResolver ModelResolver
		userResolver  UserResolver
	}
)

func CreateService(commentRepo Repository, modelResolver ModelResolver, userResolver UserResolver) Service {
	return &commentService{
		commentRepo:   commentRepo,
		modelResolver: modelResolver,
		userResolver:  userResolver,
	}
}

func (s *commentService) Get(ctx *gin.Context, requester *auth.AuthenticatedUser, modelId string) ([]CommentOut, error) {
	modelID, err := s.modelResolver.ResolveVisible(ctx, modelId, requester)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.GetAllForModel(ctx, modelID)
	if err != nil {
		return nil, err
	}

	return lo.Map(comments, func(obj ModelComment, _ int) CommentOut {
		return ToCommentOut(obj)
	}), nil
}

func (s *commentService) Create(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string, req CommentIn) (string, error) {
	modelID, err := s.modelResolver.ResolveVisible(ctx, modelId, &authUser)
	if err != nil {
		return "", err
	}

	author, err := s.userResolver.GetByUuid(ctx, authUser.UserId)
	if err != nil {
		return "", err
	}

	newUuid := utils.GenerateUuid()
	err = s.commentRepo.Create(ctx, &ModelComment{
		UUID:     newUuid,
		ModelID:  modelID,
		AuthorID: author.ID,
		Content:  req.Content,
	})
	if err != nil {
		return "", err
	}

	return newUuid, nil
}

func (s *commentService) Delete(ctx *gin.Context, authUser auth.AuthenticatedUser, commentId string) error {
	comment, err := s.commentRepo.GetByUuid(ctx, commentId)
	if err != nil {
		return err
	}

	// Only the author may remove a comment
	if comment.Author.UUID != authUser.UserId {
		return utils.ErrForbidden
	}

	return s.commentRepo.Delete(ctx, comment)
}
