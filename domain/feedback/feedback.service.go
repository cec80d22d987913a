package feedback

import (
	"context"

	"pitboxBackend/auth"
	"pitboxBackend/domain/user"
	"pitboxBackend/utils"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

type (
	UserResolver interface {
		GetByUuid(ctx context.Context, userId string) (*user.User, error)
	}

	Service interface {
		Get(ctx *gin.Context, authUser auth.AuthenticatedUser) ([]FeedbackOut, error)
		Create(ctx *gin.Context, authUser auth.AuthenticatedUser, req FeedbackIn) (string, error)
		Delete(ctx *gin.Context, authUser auth.AuthenticatedUser, postId string) error
		Vote(ctx *gin.Context, authUser auth.AuthenticatedUser, postId string) error
		Unvote(ctx *gin.Context, authUser auth.AuthenticatedUser, postId string) error
	}

	feedbackService struct {
		feedbackRepo Repository
		userResolver UserResolver
	}
)

func CreateService(feedbackRepo Repository, userResolver UserResolver) Service {
	return &feedbackService{
		feedbackRepo: feedbackRepo,
		userResolver: userResolver,
	}
}

func (s *feedbackService) Get(ctx *gin.Context, authUser auth.AuthenticatedUser) ([]FeedbackOut, error) {
	requester, err := s.userResolver.GetByUuid(ctx, authUser.UserId)
	if err != nil {
		return nil, err
	}

	posts, err := s.feedbackRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return lo.Map(posts, func(obj FeedbackPost, _ int) FeedbackOut {
		return ToFeedbackOut(obj, requester.ID)
	}), nil
}

func (s *feedbackService) Create(ctx *gin.Context, authUser auth.AuthenticatedUser, req FeedbackIn) (string, error) {
	author, err := s.userResolver.GetByUuid(ctx, authUser.UserId)
	if err != nil {
		return "", err
	}

	category := FeedbackCategory(req.Category)
	if req.Category == "" {
		category = CategoryIdea
	} else if !category.IsValid() {
		return "", utils.ErrValidationError
	}

	newUuid := utils.GenerateUuid()
	err = s.feedbackRepo.Create(ctx, &FeedbackPost{
		UUID:     newUuid,
		AuthorID: author.ID,
		Title:    req.Title,
		Body:     req.Body,
		Category: category,
	})
	if err != nil {
		return "", err
	}

	return newUuid, nil
}

func (s *feedbackService) Delete(ctx *gin.Context, authUser auth.AuthenticatedUser, postId string) error {
	post, err := s.feedbackRepo.GetByUuid(ctx, postId)
	if err != nil {
		return err
	}

	if post.Author.UUID != authUser.UserId && !authUser.IsAdmin {
		return utils.ErrForbidden
	}

	return s.feedbackRepo.Delete(ctx, post)
}

func (s *feedbackService) Vote(ctx *gin.Context, authUser auth.AuthenticatedUser, postId string) error {
	voter, err := s.userResolver.GetByUuid(ctx, authUser.UserId)
	if err != nil {
		return err
	}

	post, err := s.feedbackRepo.GetByUuid(ctx, postId)
	if err != nil {
		return err
	}

	return s.feedbackRepo.CreateVote(ctx, &FeedbackVote{
		PostID: post.ID,
		UserID: voter.ID,
	})
}

func (s *feedbackService) Unvote(ctx *gin.Context, authUser auth.AuthenticatedUser, postId string) error {
	voter, err := s.userResolver.GetByUuid(ctx, authUser.UserId)
	if err != nil {
		return err
	}

	post, err := s.feedbackRepo.GetByUuid(ctx, postId)
	if err != nil {
		return err
	}

	return s.feedbackRepo.DeleteVote(ctx, post.ID, voter.ID)
}
