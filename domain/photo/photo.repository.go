package photo

import (
	"context"

	"pitboxBackend/utils"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

type (
	// Repository scopes every query by the internal id of an
	// already-verified parent model. A photo's own primary key is never
	// trusted as an authorization boundary.
	Repository interface {
		GetAllForModel(ctx context.Context, modelID uint) ([]Photo, error)
		GetByUuid(ctx context.Context, modelID uint, photoId string) (*Photo, error)
		Create(ctx context.Context, photo *Photo) error
		Update(ctx context.Context, photo *Photo) error
		Delete(ctx context.Context, photo *Photo) error
		ClearBoxArt(ctx context.Context, modelID uint) error
		SetBoxArt(ctx context.Context, modelID uint, photoId string) error
	}

	photoRepository struct {
		db *gorm.DB
	}
)

func CreateRepository(db *gorm.DB) Repository {
	return &photoRepository{
		db: db,
	}
}

func (r *photoRepository) GetAllForModel(ctx context.Context, modelID uint) ([]Photo, error) {
	photos := make([]Photo, 0)
	result := r.db.WithContext(ctx).
		Where("model_id = ?", modelID).
		Order("sort_order, id").
		Find(&photos)

	if result.Error != nil {
		log.Errorf("[DB] Failed to fetch photos. Error: %s", result.Error.Error())
		return nil, utils.ErrDatabaseError
	}

	return photos, nil
}

func (r *photoRepository) GetByUuid(ctx context.Context, modelID uint, photoId string) (*Photo, error) {
	var photo Photo
	result := r.db.WithContext(ctx).
		Where("uuid = ? AND model_id = ?", photoId, modelID).
		Find(&photo)

	if result.Error != nil {
		log.Errorf("[DB] Failed to fetch photo by UUID. Error: %s", result.Error.Error())
		return nil, utils.ErrDatabaseError
	}

	if result.RowsAffected < 1 {
		return nil, utils.ErrUuidNotFound
	}

	return &photo, nil
}

func (r *photoRepository) Create(ctx context.Context, photo *Photo) error {
	if err := r.db.WithContext(ctx).Create(photo).Error; err != nil {
		log.Errorf("[DB] Failed to create photo. Error: %s", err.Error())
		return utils.ErrDatabaseError
	}

	return nil
}

func (r *photoRepository) Update(ctx context.Context, photo *Photo) error {
	if err := r.db.WithContext(ctx).Save(photo).Error; err != nil {
		log.Errorf("[DB] Failed to update photo. Error: %s", err.Error())
		return utils.ErrDatabaseError
	}

	return nil
}

func (r *photoRepository) Delete(ctx context.Context, photo *Photo) error {
	if err := r.db.WithContext(ctx).Delete(photo).Error; err != nil {
		log.Errorf("[DB] Failed to delete photo. Error: %s", err.Error())
		return utils.ErrDatabaseError
	}

	return nil
}

func (r *photoRepository) ClearBoxArt(ctx context.Context, modelID uint) error {
	err := r.db.WithContext(ctx).
		Model(&Photo{}).
		Where("model_id = ?", modelID).
		Update("is_box_art", false).Error

	if err != nil {
		log.Errorf("[DB] Failed to clear box art. Error: %s", err.Error())
		return utils.ErrDatabaseError
	}

	return nil
}

// SetBoxArt clears the flag on every sibling and sets it on the given photo
// in a single transaction, so the at-most-one invariant holds even under
// concurrent requests for the same model.
func (r *photoRepository) SetBoxArt(ctx context.Context, modelID uint, photoId string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Photo{}).
			Where("model_id = ?", modelID).
			Update("is_box_art", false).Error; err != nil {
			return err
		}

		result := tx.Model(&Photo{}).
			Where("uuid = ? AND model_id = ?", photoId, modelID).
			Update("is_box_art", true)

		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected < 1 {
			return utils.ErrUuidNotFound
		}

		return nil
	})

	if err == nil || err == utils.ErrUuidNotFound {
		return err
	}

	log.Errorf("[DB] Failed to set box art. Error: %s", err.Error())
	return utils.ErrDatabaseError
}
