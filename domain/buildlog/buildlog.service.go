package buildlog

import (
	"context"
	"time"

	"pitboxBackend/auth"
	"pitboxBackend/domain/photo"
	"pitboxBackend/utils"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

type (
	// ModelGuard resolves a model to its internal id only when the given
	// user owns it. Implemented by the model repository.
	ModelGuard interface {
		ResolveOwned(ctx context.Context, modelId string, ownerId string) (uint, error)
	}

	// PhotoResolver loads a photo scoped by the verified parent model, so
	// linked photos are guaranteed to belong to the same model as the
	// entry. Implemented by the photo repository.
	PhotoResolver interface {
		GetByUuid(ctx context.Context, modelID uint, photoId string) (*photo.Photo, error)
	}

	Service interface {
		Get(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string) ([]BuildLogOut, error)
		Create(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string, req BuildLogIn) (string, error)
		Update(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string, entryId string, req BuildLogUpdateIn) error
		Delete(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string, entryId string) error
		LinkPhoto(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string, entryId string, photoId string) error
		UnlinkPhoto(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string, entryId string, photoId string) error
	}

	buildLogService struct {
		buildLogRepo  Repository
		modelGuard    ModelGuard
		photoResolver PhotoResolver
	}
)

func CreateService(buildLogRepo Repository, modelGuard ModelGuard, photoResolver PhotoResolver) Service {
	return &buildLogService{
		buildLogRepo:  buildLogRepo,
		modelGuard:    modelGuard,
		photoResolver: photoResolver,
	}
}

func (s *buildLogService) Get(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string) ([]BuildLogOut, error) {
	modelID, err := s.modelGuard.ResolveOwned(ctx, modelId, authUser.UserId)
	if err != nil {
		return nil, err
	}

	entries, err := s.buildLogRepo.GetAllForModel(ctx, modelID)
	if err != nil {
		return nil, err
	}

	return lo.Map(entries, func(obj BuildLogEntry, _ int) BuildLogOut {
		return ToBuildLogOut(obj)
	}), nil
}

func (s *buildLogService) Create(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string, req BuildLogIn) (string, error) {
	modelID, err := s.modelGuard.ResolveOwned(ctx, modelId, authUser.UserId)
	if err != nil {
		return "", err
	}

	entryDate := time.Now()
	if req.EntryDate != nil {
		entryDate = *req.EntryDate
	}

	entryNumber := req.EntryNumber.Int()
	if entryNumber < 1 {
		entryNumber = 1
	}

	newUuid := utils.GenerateUuid()
	err = s.buildLogRepo.Create(ctx, &BuildLogEntry{
		UUID:        newUuid,
		ModelID:     modelID,
		EntryNumber: entryNumber,
		Title:       req.Title,
		Content:     req.Content,
		EntryDate:   entryDate,
	})
	if err != nil {
		return "", err
	}

	return newUuid, nil
}

func (s *buildLogService) Update(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string, entryId string, req BuildLogUpdateIn) error {
	modelID, err := s.modelGuard.ResolveOwned(ctx, modelId, authUser.UserId)
	if err != nil {
		return err
	}

	entry, err := s.buildLogRepo.GetByUuid(ctx, modelID, entryId)
	if err != nil {
		return err
	}

	if req.EntryNumber != nil {
		entry.EntryNumber = req.EntryNumber.Int()
	}
	if req.Title != nil {
		entry.Title = *req.Title
	}
	if req.Content != nil {
		entry.Content = *req.Content
	}
	if req.EntryDate != nil {
		entry.EntryDate = *req.EntryDate
	}

	return s.buildLogRepo.Update(ctx, entry)
}

func (s *buildLogService) Delete(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string, entryId string) error {
	modelID, err := s.modelGuard.ResolveOwned(ctx, modelId, authUser.UserId)
	if err != nil {
		return err
	}

	entry, err := s.buildLogRepo.GetByUuid(ctx, modelID, entryId)
	if err != nil {
		return err
	}

	return s.buildLogRepo.Delete(ctx, entry)
}

func (s *buildLogService) LinkPhoto(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string, entryId string, photoId string) error {
	entry, linked, err := s.resolveLink(ctx, authUser, modelId, entryId, photoId)
	if err != nil {
		return err
	}

	return s.buildLogRepo.LinkPhoto(ctx, entry, linked)
}

func (s *buildLogService) UnlinkPhoto(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string, entryId string, photoId string) error {
	entry, linked, err := s.resolveLink(ctx, authUser, modelId, entryId, photoId)
	if err != nil {
		return err
	}

	return s.buildLogRepo.UnlinkPhoto(ctx, entry, linked)
}

func (s *buildLogService) resolveLink(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string, entryId string, photoId string) (*BuildLogEntry, *photo.Photo, error) {
	modelID, err := s.modelGuard.ResolveOwned(ctx, modelId, authUser.UserId)
	if err != nil {
		return nil, nil, err
	}

	entry, err := s.buildLogRepo.GetByUuid(ctx, modelID, entryId)
	if err != nil {
		return nil, nil, err
	}

	linked, err := s.photoResolver.GetByUuid(ctx, modelID, photoId)
	if err != nil {
		return nil, nil, err
	}

	return entry, linked, nil
}
