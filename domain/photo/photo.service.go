package photo

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"pitboxBackend/auth"
	"pitboxBackend/storage"
	"pitboxBackend/utils"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

type (
	// ModelGuard resolves a model to its internal id only when the given
	// user owns it. Implemented by the model repository. Every child
	// operation goes through this check first and fails closed with a
	// not-found error.
	ModelGuard interface {
		ResolveOwned(ctx context.Context, modelId string, ownerId string) (uint, error)
	}

	Service interface {
		Get(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string) ([]PhotoOut, error)
		Upload(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string, file *multipart.FileHeader, caption string) (string, error)
		Update(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string, photoId string, req PhotoUpdateIn) error
		Delete(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string, photoId string) error
		SetBoxArt(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string, photoId string) error
		ClearBoxArt(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string) error
	}

	photoService struct {
		photoRepo      Repository
		modelGuard     ModelGuard
		storageManager storage.StorageManager
		thumbSize      uint
	}
)

const maxUploadSize = 32 << 20

func CreateService(photoRepo Repository, modelGuard ModelGuard, storageManager storage.StorageManager, thumbSize uint) Service {
	return &photoService{
		photoRepo:      photoRepo,
		modelGuard:     modelGuard,
		storageManager: storageManager,
		thumbSize:      thumbSize,
	}
}

func (s *photoService) Get(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string) ([]PhotoOut, error) {
	modelID, err := s.modelGuard.ResolveOwned(ctx, modelId, authUser.UserId)
	if err != nil {
		return nil, err
	}

	photos, err := s.photoRepo.GetAllForModel(ctx, modelID)
	if err != nil {
		return nil, err
	}

	return lo.Map(photos, func(obj Photo, _ int) PhotoOut {
		return ToPhotoOut(obj)
	}), nil
}

func (s *photoService) Upload(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string, file *multipart.FileHeader, caption string) (string, error) {
	modelID, err := s.modelGuard.ResolveOwned(ctx, modelId, authUser.UserId)
	if err != nil {
		return "", err
	}

	if file == nil || file.Size == 0 || file.Size > maxUploadSize {
		return "", utils.ErrValidationError
	}

	opened, err := file.Open()
	if err != nil {
		return "", utils.ErrValidationError
	}
	defer opened.Close()

	data, err := io.ReadAll(opened)
	if err != nil {
		return "", utils.ErrServer
	}

	newUuid := utils.GenerateUuid()
	extension := strings.ToLower(filepath.Ext(file.Filename))
	fileName := newUuid + extension
	mimeType := file.Header.Get("Content-Type")

	publicUrl, err := s.storageManager.Save(fileName, data, mimeType)
	if err != nil {
		log.Errorf("[STORAGE] Failed to store photo '%s': %s", fileName, err.Error())
		return "", utils.ErrServer
	}

	// A failed thumbnail is not fatal, the original still gets served
	thumbUrl := ""
	if thumbData, err := storage.CreateThumb(data, s.thumbSize); err != nil {
		log.Warnf("[STORAGE] Failed to create thumbnail for '%s': %s", fileName, err.Error())
	} else {
		thumbName := fmt.Sprintf("%s_thumb.jpg", newUuid)
		if thumbUrl, err = s.storageManager.Save(thumbName, thumbData, "image/jpeg"); err != nil {
			log.Warnf("[STORAGE] Failed to store thumbnail for '%s': %s", fileName, err.Error())
			thumbUrl = ""
		}
	}

	err = s.photoRepo.Create(ctx, &Photo{
		UUID:         newUuid,
		ModelID:      modelID,
		FileName:     fileName,
		OriginalName: file.Filename,
		PublicUrl:    publicUrl,
		ThumbUrl:     thumbUrl,
		Caption:      caption,
	})
	if err != nil {
		return "", err
	}

	return newUuid, nil
}

func (s *photoService) Update(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string, photoId string, req PhotoUpdateIn) error {
	modelID, err := s.modelGuard.ResolveOwned(ctx, modelId, authUser.UserId)
	if err != nil {
		return err
	}

	photo, err := s.photoRepo.GetByUuid(ctx, modelID, photoId)
	if err != nil {
		return err
	}

	if req.Caption != nil {
		photo.Caption = *req.Caption
	}
	if req.SortOrder != nil {
		photo.SortOrder = req.SortOrder.Int()
	}
	if req.Metadata != nil {
		photo.Metadata = *req.Metadata
	}

	return s.photoRepo.Update(ctx, photo)
}

func (s *photoService) Delete(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string, photoId string) error {
	modelID, err := s.modelGuard.ResolveOwned(ctx, modelId, authUser.UserId)
	if err != nil {
		return err
	}

	photo, err := s.photoRepo.GetByUuid(ctx, modelID, photoId)
	if err != nil {
		return err
	}

	if err := s.photoRepo.Delete(ctx, photo); err != nil {
		return err
	}

	s.deleteBlobs(photo)

	return nil
}

func (s *photoService) SetBoxArt(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string, photoId string) error {
	modelID, err := s.modelGuard.ResolveOwned(ctx, modelId, authUser.UserId)
	if err != nil {
		return err
	}

	return s.photoRepo.SetBoxArt(ctx, modelID, photoId)
}

func (s *photoService) ClearBoxArt(ctx *gin.Context, authUser auth.AuthenticatedUser, modelId string) error {
	modelID, err := s.modelGuard.ResolveOwned(ctx, modelId, authUser.UserId)
	if err != nil {
		return err
	}

	return s.photoRepo.ClearBoxArt(ctx, modelID)
}

func (s *photoService) deleteBlobs(photo *Photo) {
	if err := s.storageManager.Delete(photo.FileName); err != nil {
		log.Warnf("[STORAGE] Failed to delete photo blob '%s': %s", photo.FileName, err.Error())
	}
	if photo.ThumbUrl != "" {
		thumbName := fmt.Sprintf("%s_thumb.jpg", photo.UUID)
		if err := s.storageManager.Delete(thumbName); err != nil {
			log.Warnf("[STORAGE] Failed to delete thumbnail '%s': %s", thumbName, err.Error())
		}
	}
}
