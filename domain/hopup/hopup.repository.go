package hopup

import (
	"context"

	"pitboxBackend/utils"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

type (
	// Repository scopes every query by the internal id of an
	// already-verified parent model.
	Repository interface {
		GetAllForModel(ctx context.Context, modelID uint) ([]HopUpPart, error)
		GetByUuid(ctx context.Context, modelID uint, partId string) (*HopUpPart, error)
		Create(ctx context.Context, part *HopUpPart) error
		Update(ctx context.Context, part *HopUpPart) error
		Delete(ctx context.Context, part *HopUpPart) error
	}

	hopUpRepository struct {
		db *gorm.DB
	}
)

func CreateRepository(db *gorm.DB) Repository {
	return &hopUpRepository{
		db: db,
	}
}

func (r *hopUpRepository) GetAllForModel(ctx context.Context, modelID uint) ([]HopUpPart, error) {
	parts := make([]HopUpPart, 0)
	result := r.db.WithContext(ctx).
		Preload("Photo").
		Where("model_id = ?", modelID).
		Order("id").
		Find(&parts)

	if result.Error != nil {
		log.Errorf("[DB] Failed to fetch hop-up parts. Error: %s", result.Error.Error())
		return nil, utils.ErrDatabaseError
	}

	return parts, nil
}

func (r *hopUpRepository) GetByUuid(ctx context.Context, modelID uint, partId string) (*HopUpPart, error) {
	var part HopUpPart
	result := r.db.WithContext(ctx).
		Preload("Photo").
		Where("uuid = ? AND model_id = ?", partId, modelID).
		Find(&part)

	if result.Error != nil {
		log.Errorf("[DB] Failed to fetch hop-up part by UUID. Error: %s", result.Error.Error())
		return nil, utils.ErrDatabaseError
	}

	if result.RowsAffected < 1 {
		return nil, utils.ErrUuidNotFound
	}

	return &part, nil
}

func (r *hopUpRepository) Create(ctx context.Context, part *HopUpPart) error {
	if err := r.db.WithContext(ctx).Create(part).Error; err != nil {
		log.Errorf("[DB] Failed to create hop-up part. Error: %s", err.Error())
		return utils.ErrDatabaseError
	}

	return nil
}

func (r *hopUpRepository) Update(ctx context.Context, part *HopUpPart) error {
	if err := r.db.WithContext(ctx).Omit("Photo").Save(part).Error; err != nil {
		log.Errorf("[DB] Failed to update hop-up part. Error: %s", err.Error())
		return utils.ErrDatabaseError
	}

	return nil
}

func (r *hopUpRepository) Delete(ctx context.Context, part *HopUpPart) error {
	if err := r.db.WithContext(ctx).Delete(part).Error; err != nil {
		log.Errorf("[DB] Failed to delete hop-up part. Error: %s", err.Error())
		return utils.ErrDatabaseError
	}

	return nil
}
