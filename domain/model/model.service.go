package model

import (
	"context"
	"fmt"

	"pitboxBackend/auth"
	"pitboxBackend/domain/buildlog"
	"pitboxBackend/domain/hopup"
	"pitboxBackend/domain/user"
	"pitboxBackend/storage"
	"pitboxBackend/utils"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

type (
	UserResolver interface {
		GetByUuid(ctx context.Context, userId string) (*user.User, error)
	}

	// Import writes child rows against an already verified model id.
	// Satisfied by the hop-up and build-log repositories.
	HopUpWriter interface {
		Create(ctx context.Context, part *hopup.HopUpPart) error
	}

	LogWriter interface {
		Create(ctx context.Context, entry *buildlog.BuildLogEntry) error
	}

	Service interface {
		GetAll(ctx *gin.Context, authUser auth.AuthenticatedUser) ([]ModelOut, error)
		Get(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string) (*ModelOut, error)
		Create(ctx *gin.Context, authUser auth.AuthenticatedUser, req ModelIn) (string, error)
		Update(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string, req ModelUpdateIn) error
		Delete(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string) (bool, error)
		Stats(ctx *gin.Context, authUser auth.AuthenticatedUser) (*StatsOut, error)
		GetShared(ctx *gin.Context, slug string, requester *auth.AuthenticatedUser) (*SharedModelOut, error)
		Export(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string) (*ModelExport, error)
		Import(ctx *gin.Context, authUser auth.AuthenticatedUser, payload []byte) (string, error)

		// ResolveVisible applies the sharing gate for packages that only
		// need to know whether a requester may read a model right now.
		ResolveVisible(ctx context.Context, modelId string, requester *auth.AuthenticatedUser) (uint, error)

		// DeleteAllForCreator purges every model a user owns, stored photo
		// files included. Runs when an admin deletes the account.
		DeleteAllForCreator(ctx context.Context, creatorId string) error

		// CountAll reports the catalog size for the admin dashboard.
		CountAll(ctx context.Context) (int64, error)
	}

	modelService struct {
		modelRepo      Repository
		userResolver   UserResolver
		storageManager storage.StorageManager
		hopUpWriter    HopUpWriter
		logWriter      LogWriter
	}
)

func CreateService(
	modelRepo Repository,
	userResolver UserResolver,
	storageManager storage.StorageManager,
	hopUpWriter HopUpWriter,
	logWriter LogWriter,
) Service {
	return &modelService{
		modelRepo:      modelRepo,
		userResolver:   userResolver,
		storageManager: storageManager,
		hopUpWriter:    hopUpWriter,
		logWriter:      logWriter,
	}
}

func (s *modelService) GetAll(ctx *gin.Context, authUser auth.AuthenticatedUser) ([]ModelOut, error) {
	models, err := s.modelRepo.GetAllByCreator(ctx, authUser.UserId)
	if err != nil {
		return nil, err
	}

	return lo.Map(models, func(obj Model, _ int) ModelOut {
		return ToModelOut(obj)
	}), nil
}

func (s *modelService) Get(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string) (*ModelOut, error) {
	model, err := s.modelRepo.GetByUuid(ctx, modelId, authUser.UserId)
	if err != nil {
		return nil, err
	}

	result := ToModelOut(*model)
	return &result, nil
}

func (s *modelService) Create(ctx *gin.Context, authUser auth.AuthenticatedUser, req ModelIn) (string, error) {
	creator, err := s.userResolver.GetByUuid(ctx, authUser.UserId)
	if err != nil {
		return "", err
	}

	modelCount, err := s.modelRepo.CountByCreator(ctx, authUser.UserId)
	if err != nil {
		return "", err
	}
	if modelCount >= int64(creator.TotalQuota()) {
		return "", utils.ErrQuotaExceeded
	}

	buildStatus := StatusPlanning
	if req.BuildStatus != "" {
		buildStatus = BuildStatus(req.BuildStatus)
		if !buildStatus.IsValid() {
			return "", utils.ErrValidationError
		}
	}

	buildType := TypeKit
	if req.BuildType != "" {
		buildType = BuildType(req.BuildType)
		if !buildType.IsValid() {
			return "", utils.ErrValidationError
		}
	}

	tags := req.Tags
	if tags == nil {
		tags = make([]string, 0)
	}

	newUuid := utils.GenerateUuid()
	err = s.modelRepo.Create(ctx, &Model{
		UUID:        newUuid,
		CreatorID:   creator.ID,
		Name:        req.Name,
		ItemNumber:  req.ItemNumber,
		Chassis:     req.Chassis,
		ReleaseYear: req.ReleaseYear.Int(),
		BuildStatus: buildStatus,
		BuildType:   buildType,
		Cost:        req.Cost.Float64(),
		Scale:       req.Scale,
		DriveType:   req.DriveType,
		Material:    req.Material,
		Motor:       req.Motor,
		Battery:     req.Battery,
		Tags:        tags,
	})
	if err != nil {
		return "", err
	}

	return newUuid, nil
}

func (s *modelService) Update(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string, req ModelUpdateIn) error {
	model, err := s.modelRepo.GetByUuid(ctx, modelId, authUser.UserId)
	if err != nil {
		return err
	}

	if req.Name != nil {
		model.Name = *req.Name
	}
	if req.ItemNumber != nil {
		model.ItemNumber = *req.ItemNumber
	}
	if req.Chassis != nil {
		model.Chassis = *req.Chassis
	}
	if req.ReleaseYear != nil {
		model.ReleaseYear = req.ReleaseYear.Int()
	}
	if req.BuildStatus != nil {
		buildStatus := BuildStatus(*req.BuildStatus)
		if !buildStatus.IsValid() {
			return utils.ErrValidationError
		}
		model.BuildStatus = buildStatus
	}
	if req.BuildType != nil {
		buildType := BuildType(*req.BuildType)
		if !buildType.IsValid() {
			return utils.ErrValidationError
		}
		model.BuildType = buildType
	}
	if req.Cost != nil {
		model.Cost = req.Cost.Float64()
	}
	if req.Scale != nil {
		model.Scale = *req.Scale
	}
	if req.DriveType != nil {
		model.DriveType = *req.DriveType
	}
	if req.Material != nil {
		model.Material = *req.Material
	}
	if req.Motor != nil {
		model.Motor = *req.Motor
	}
	if req.Battery != nil {
		model.Battery = *req.Battery
	}
	if req.Tags != nil {
		model.Tags = *req.Tags
	}
	if req.Shared != nil {
		// The slug survives unsharing so a later re-share keeps old links
		model.Shared = *req.Shared
	}

	return s.modelRepo.Update(ctx, model)
}

func (s *modelService) Delete(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string) (bool, error) {
	model, err := s.modelRepo.GetByUuid(ctx, modelId, authUser.UserId)
	if err != nil {
		if err == utils.ErrUuidNotFound {
			return false, nil
		}
		return false, err
	}

	deleted, err := s.modelRepo.Delete(ctx, model)
	if err != nil {
		return false, err
	}

	if deleted {
		s.deletePhotoBlobs(model)
	}

	return deleted, nil
}

func (s *modelService) Stats(ctx *gin.Context, authUser auth.AuthenticatedUser) (*StatsOut, error) {
	return s.modelRepo.AggregateStats(ctx, authUser.UserId)
}

func (s *modelService) GetShared(ctx *gin.Context, slug string, requester *auth.AuthenticatedUser) (*SharedModelOut, error) {
	model, err := s.modelRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if !isVisibleTo(model, requester) {
		return nil, utils.ErrSlugNotFound
	}

	result := ToSharedModelOut(*model)
	return &result, nil
}

func (s *modelService) ResolveVisible(ctx context.Context, modelId string, requester *auth.AuthenticatedUser) (uint, error) {
	if requester != nil {
		if internalID, err := s.modelRepo.ResolveOwned(ctx, modelId, requester.UserId); err == nil {
			return internalID, nil
		}
	}

	model, err := s.modelRepo.GetAnyByUuid(ctx, modelId)
	if err != nil {
		return 0, err
	}

	if !isVisibleTo(model, requester) {
		return 0, utils.ErrUuidNotFound
	}

	return model.ID, nil
}

// isVisibleTo evaluates the sharing gate against the owner's current
// preference. Evaluated on every request, never cached, so a preference
// change takes effect immediately.
func isVisibleTo(model *Model, requester *auth.AuthenticatedUser) bool {
	if requester != nil && model.Creator.UUID == requester.UserId {
		return true
	}

	if !model.Shared {
		return false
	}

	switch model.Creator.SharePreference {
	case user.SharePublic:
		return true
	case user.ShareAuthenticated:
		return requester != nil
	default:
		return false
	}
}

func (s *modelService) DeleteAllForCreator(ctx context.Context, creatorId string) error {
	models, err := s.modelRepo.GetAllByCreator(ctx, creatorId)
	if err != nil {
		return err
	}

	for i := range models {
		model, err := s.modelRepo.GetByUuid(ctx, models[i].UUID, creatorId)
		if err != nil {
			return err
		}

		deleted, err := s.modelRepo.Delete(ctx, model)
		if err != nil {
			return err
		}
		if deleted {
			s.deletePhotoBlobs(model)
		}
	}

	return nil
}

func (s *modelService) CountAll(ctx context.Context) (int64, error) {
	return s.modelRepo.CountAll(ctx)
}

func (s *modelService) deletePhotoBlobs(model *Model) {
	for _, obj := range model.Photos {
		if err := s.storageManager.Delete(obj.FileName); err != nil {
			log.Warnf("[STORAGE] Failed to delete photo blob '%s': %s", obj.FileName, err.Error())
		}
		if obj.ThumbUrl != "" {
			thumbName := fmt.Sprintf("%s_thumb.jpg", obj.UUID)
			if err := s.storageManager.Delete(thumbName); err != nil {
				log.Warnf("[STORAGE] Failed to delete thumbnail '%s': %s", thumbName, err.Error())
			}
		}
	}
}
