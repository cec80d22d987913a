package hopup

import (
	"context"

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

	// PhotoResolver verifies that a referenced product photo belongs to
	// the same model. Implemented by the photo repository.
	PhotoResolver interface {
		GetByUuid(ctx context.Context, modelID uint, photoId string) (*photo.Photo, error)
	}

	Service interface {
		Get(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string) ([]HopUpOut, error)
		Create(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string, req HopUpIn) (string, error)
		Update(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string, partId string, req HopUpUpdateIn) error
		Delete(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string, partId string) error
	}

	hopUpService struct {
		hopUpRepo     Repository
		modelGuard    ModelGuard
		photoResolver PhotoResolver
	}
)

func CreateService(hopUpRepo Repository, modelGuard ModelGuard, photoResolver PhotoResolver) Service {
	return &hopUpService{
		hopUpRepo:     hopUpRepo,
		modelGuard:    modelGuard,
		photoResolver: photoResolver,
	}
}

func (s *hopUpService) Get(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string) ([]HopUpOut, error) {
	modelID, err := s.modelGuard.ResolveOwned(ctx, modelId, authUser.UserId)
	if err != nil {
		return nil, err
	}

	parts, err := s.hopUpRepo.GetAllForModel(ctx, modelID)
	if err != nil {
		return nil, err
	}

	return lo.Map(parts, func(obj HopUpPart, _ int) HopUpOut {
		return ToHopUpOut(obj)
	}), nil
}

func (s *hopUpService) Create(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string, req HopUpIn) (string, error) {
	modelID, err := s.modelGuard.ResolveOwned(ctx, modelId, authUser.UserId)
	if err != nil {
		return "", err
	}

	status := StatusPlanned
	if req.Status != "" {
		status = InstallStatus(req.Status)
		if !status.IsValid() {
			return "", utils.ErrValidationError
		}
	}

	quantity := req.Quantity.Int()
	if quantity < 1 {
		quantity = 1
	}

	var photoID *uint
	if req.PhotoId != "" {
		productPhoto, err := s.photoResolver.GetByUuid(ctx, modelID, req.PhotoId)
		if err != nil {
			return "", err
		}
		photoID = &productPhoto.ID
	}

	compatibility := req.Compatibility
	if compatibility == nil {
		compatibility = make([]string, 0)
	}

	newUuid := utils.GenerateUuid()
	err = s.hopUpRepo.Create(ctx, &HopUpPart{
		UUID:          newUuid,
		ModelID:       modelID,
		Name:          req.Name,
		ItemNumber:    req.ItemNumber,
		Category:      req.Category,
		Manufacturer:  req.Manufacturer,
		Supplier:      req.Supplier,
		Cost:          req.Cost.Float64(),
		Quantity:      quantity,
		Status:        status,
		InstalledAt:   req.InstalledAt,
		PhotoID:       photoID,
		Compatibility: compatibility,
	})
	if err != nil {
		return "", err
	}

	return newUuid, nil
}

func (s *hopUpService) Update(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string, partId string, req HopUpUpdateIn) error {
	modelID, err := s.modelGuard.ResolveOwned(ctx, modelId, authUser.UserId)
	if err != nil {
		return err
	}

	part, err := s.hopUpRepo.GetByUuid(ctx, modelID, partId)
	if err != nil {
		return err
	}

	if req.Name != nil {
		part.Name = *req.Name
	}
	if req.ItemNumber != nil {
		part.ItemNumber = *req.ItemNumber
	}
	if req.Category != nil {
		part.Category = *req.Category
	}
	if req.Manufacturer != nil {
		part.Manufacturer = *req.Manufacturer
	}
	if req.Supplier != nil {
		part.Supplier = *req.Supplier
	}
	if req.Cost != nil {
		part.Cost = req.Cost.Float64()
	}
	if req.Quantity != nil {
		part.Quantity = req.Quantity.Int()
	}
	if req.Status != nil {
		status := InstallStatus(*req.Status)
		if !status.IsValid() {
			return utils.ErrValidationError
		}
		part.Status = status
	}
	if req.InstalledAt != nil {
		part.InstalledAt = req.InstalledAt
	}
	if req.PhotoId != nil {
		if *req.PhotoId == "" {
			part.PhotoID = nil
			part.Photo = nil
		} else {
			productPhoto, err := s.photoResolver.GetByUuid(ctx, modelID, *req.PhotoId)
			if err != nil {
				return err
			}
			part.PhotoID = &productPhoto.ID
		}
	}
	if req.Compatibility != nil {
		part.Compatibility = *req.Compatibility
	}

	return s.hopUpRepo.Update(ctx, part)
}

func (s *hopUpService) Delete(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string, partId string) error {
	modelID, err := s.modelGuard.ResolveOwned(ctx, modelId, authUser.UserId)
	if err != nil {
		return err
	}

	part, err := s.hopUpRepo.GetByUuid(ctx, modelID, partId)
	if err != nil {
		return err
	}

	return s.hopUpRepo.Delete(ctx, part)
}
