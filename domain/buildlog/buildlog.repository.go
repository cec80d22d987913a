package buildlog

import (
	"context"

	"pitboxBackend/domain/photo"
	"pitboxBackend/utils"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

type (
	// Repository scopes every query by the internal id of an
	// already-verified parent model, mirroring the photo repository.
	Repository interface {
		GetAllForModel(ctx context.Context, modelID uint) ([]BuildLogEntry, error)
		GetByUuid(ctx context.Context, modelID uint, entryId string) (*BuildLogEntry, error)
		Create(ctx context.Context, entry *BuildLogEntry) error
		Update(ctx context.Context, entry *BuildLogEntry) error
		Delete(ctx context.Context, entry *BuildLogEntry) error
		LinkPhoto(ctx context.Context, entry *BuildLogEntry, linked *photo.Photo) error
		UnlinkPhoto(ctx context.Context, entry *BuildLogEntry, linked *photo.Photo) error
	}

	buildLogRepository struct {
		db *gorm.DB
	}
)

func CreateRepository(db *gorm.DB) Repository {
	return &buildLogRepository{
		db: db,
	}
}

func (r *buildLogRepository) GetAllForModel(ctx context.Context, modelID uint) ([]BuildLogEntry, error) {
	entries := make([]BuildLogEntry, 0)
	result := r.db.WithContext(ctx).
		Preload("Photos").
		Where("model_id = ?", modelID).
		Order("entry_number DESC, entry_date DESC").
		Find(&entries)

	if result.Error != nil {
		log.Errorf("[DB] Failed to fetch build log entries. Error: %s", result.Error.Error())
		return nil, utils.ErrDatabaseError
	}

	return entries, nil
}

func (r *buildLogRepository) GetByUuid(ctx context.Context, modelID uint, entryId string) (*BuildLogEntry, error) {
	var entry BuildLogEntry
	result := r.db.WithContext(ctx).
		Preload("Photos").
		Where("uuid = ? AND model_id = ?", entryId, modelID).
		Find(&entry)

	if result.Error != nil {
		log.Errorf("[DB] Failed to fetch build log entry by UUID. Error: %s", result.Error.Error())
		return nil, utils.ErrDatabaseError
	}

	if result.RowsAffected < 1 {
		return nil, utils.ErrUuidNotFound
	}

	return &entry, nil
}

func (r *buildLogRepository) Create(ctx context.Context, entry *BuildLogEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		log.Errorf("[DB] Failed to create build log entry. Error: %s", err.Error())
		return utils.ErrDatabaseError
	}

	return nil
}

func (r *buildLogRepository) Update(ctx context.Context, entry *BuildLogEntry) error {
	if err := r.db.WithContext(ctx).Omit("Photos").Save(entry).Error; err != nil {
		log.Errorf("[DB] Failed to update build log entry. Error: %s", err.Error())
		return utils.ErrDatabaseError
	}

	return nil
}

func (r *buildLogRepository) Delete(ctx context.Context, entry *BuildLogEntry) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(entry).Association("Photos").Clear(); err != nil {
			return err
		}

		return tx.Delete(entry).Error
	})

	if err != nil {
		log.Errorf("[DB] Failed to delete build log entry. Error: %s", err.Error())
		return utils.ErrDatabaseError
	}

	return nil
}

func (r *buildLogRepository) LinkPhoto(ctx context.Context, entry *BuildLogEntry, linked *photo.Photo) error {
	if err := r.db.WithContext(ctx).Model(entry).Association("Photos").Append(linked); err != nil {
		log.Errorf("[DB] Failed to link photo to build log entry. Error: %s", err.Error())
		return utils.ErrDatabaseError
	}

	return nil
}

func (r *buildLogRepository) UnlinkPhoto(ctx context.Context, entry *BuildLogEntry, linked *photo.Photo) error {
	if err := r.db.WithContext(ctx).Model(entry).Association("Photos").Delete(linked); err != nil {
		log.Errorf("[DB] Failed to unlink photo from build log entry. Error: %s", err.Error())
		return utils.ErrDatabaseError
	}

	return nil
}
