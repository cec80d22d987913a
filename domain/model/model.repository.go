package model

import (
	"context"
	"errors"
	"sort"

	"pitboxBackend/domain/buildlog"
	"pitboxBackend/domain/comment"
	"pitboxBackend/domain/hopup"
	"pitboxBackend/domain/photo"
	"pitboxBackend/utils"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// recentLogEntries bounds the build-log slice returned by the list view.
// The detail view always returns every entry.
const recentLogEntries = 5

const slugRetryLimit = 5

type (
	Repository interface {
		// ResolveOwned returns the internal id of the model only when it
		// belongs to the given owner. Any miss, including a model owned by
		// somebody else, is ErrUuidNotFound.
		ResolveOwned(ctx context.Context, modelId string, ownerId string) (uint, error)
		GetAllByCreator(ctx context.Context, creatorId string) ([]Model, error)
		GetByUuid(ctx context.Context, modelId string, creatorId string) (*Model, error)
		GetBySlug(ctx context.Context, slug string) (*Model, error)
		// GetAnyByUuid skips the ownership scope. Callers must run the
		// result through the sharing gate before exposing anything.
		GetAnyByUuid(ctx context.Context, modelId string) (*Model, error)
		CountByCreator(ctx context.Context, creatorId string) (int64, error)
		CountAll(ctx context.Context) (int64, error)
		Create(ctx context.Context, model *Model) error
		Update(ctx context.Context, model *Model) error
		Delete(ctx context.Context, model *Model) (bool, error)
		AggregateStats(ctx context.Context, creatorId string) (*StatsOut, error)
	}

	modelRepository struct {
		db *gorm.DB
	}
)

func CreateRepository(db *gorm.DB) Repository {
	return &modelRepository{
		db: db,
	}
}

func (r *modelRepository) ownedByCreator(ctx context.Context, creatorId string) *gorm.DB {
	return r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = models.creator_id").
		Where("users.uuid = ?", creatorId)
}

func (r *modelRepository) ResolveOwned(ctx context.Context, modelId string, ownerId string) (uint, error) {
	var model Model
	result := r.ownedByCreator(ctx, ownerId).
		Where("models.uuid = ?", modelId).
		Select("models.id").
		Find(&model)

	if result.Error != nil {
		log.Errorf("[DB] Failed to resolve model ownership. Error: %s", result.Error.Error())
		return 0, utils.ErrDatabaseError
	}

	if result.RowsAffected < 1 {
		return 0, utils.ErrUuidNotFound
	}

	return model.ID, nil
}

func (r *modelRepository) GetAllByCreator(ctx context.Context, creatorId string) ([]Model, error) {
	models := make([]Model, 0)
	result := r.ownedByCreator(ctx, creatorId).
		Preload("Photos").
		Preload("LogEntries").
		Preload("HopUps").
		Order("models.updated_at DESC").
		Find(&models)

	if result.Error != nil {
		log.Errorf("[DB] Failed to fetch models. Error: %s", result.Error.Error())
		return nil, utils.ErrDatabaseError
	}

	for i := range models {
		models[i].LogEntries = trimToRecent(models[i].LogEntries)
	}

	return models, nil
}

// trimToRecent keeps the newest entries by entry date, then entry number.
func trimToRecent(entries []buildlog.BuildLogEntry) []buildlog.BuildLogEntry {
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].EntryDate.Equal(entries[j].EntryDate) {
			return entries[i].EntryDate.After(entries[j].EntryDate)
		}
		return entries[i].EntryNumber > entries[j].EntryNumber
	})

	if len(entries) > recentLogEntries {
		return entries[:recentLogEntries]
	}
	return entries
}

func (r *modelRepository) GetByUuid(ctx context.Context, modelId string, creatorId string) (*Model, error) {
	var model Model
	result := r.ownedByCreator(ctx, creatorId).
		Preload("Photos").
		Preload("LogEntries.Photos").
		Preload("HopUps.Photo").
		Where("models.uuid = ?", modelId).
		Find(&model)

	if result.Error != nil {
		log.Errorf("[DB] Failed to fetch model by UUID. Error: %s", result.Error.Error())
		return nil, utils.ErrDatabaseError
	}

	if result.RowsAffected < 1 {
		return nil, utils.ErrUuidNotFound
	}

	return &model, nil
}

func (r *modelRepository) GetBySlug(ctx context.Context, slug string) (*Model, error) {
	var model Model
	result := r.db.WithContext(ctx).
		Preload("Creator").
		Preload("Photos").
		Preload("LogEntries.Photos").
		Preload("HopUps.Photo").
		Preload("Comments.Author").
		Where("share_slug = ?", slug).
		Find(&model)

	if result.Error != nil {
		log.Errorf("[DB] Failed to fetch model by slug. Error: %s", result.Error.Error())
		return nil, utils.ErrDatabaseError
	}

	if result.RowsAffected < 1 {
		return nil, utils.ErrSlugNotFound
	}

	return &model, nil
}

func (r *modelRepository) GetAnyByUuid(ctx context.Context, modelId string) (*Model, error) {
	var model Model
	result := r.db.WithContext(ctx).
		Preload("Creator").
		Where("uuid = ?", modelId).
		Find(&model)

	if result.Error != nil {
		log.Errorf("[DB] Failed to fetch model by UUID. Error: %s", result.Error.Error())
		return nil, utils.ErrDatabaseError
	}

	if result.RowsAffected < 1 {
		return nil, utils.ErrUuidNotFound
	}

	return &model, nil
}

func (r *modelRepository) CountByCreator(ctx context.Context, creatorId string) (int64, error) {
	var count int64
	result := r.ownedByCreator(ctx, creatorId).
		Model(&Model{}).
		Count(&count)

	if result.Error != nil {
		log.Errorf("[DB] Failed to count models. Error: %s", result.Error.Error())
		return 0, utils.ErrDatabaseError
	}

	return count, nil
}

func (r *modelRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&Model{}).Count(&count)
	if result.Error != nil {
		log.Errorf("[DB] Failed to count models. Error: %s", result.Error.Error())
		return 0, utils.ErrDatabaseError
	}

	return count, nil
}

func (r *modelRepository) Create(ctx context.Context, model *Model) error {
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		log.Errorf("[DB] Failed to create model. Error: %s", err.Error())
		return utils.ErrDatabaseError
	}

	return nil
}

// Update persists the model. When sharing was just enabled and no slug
// exists yet, a slug is derived from the name and saved in the same
// statement. The unique index rejects a colliding slug, in which case a
// fresh suffix is drawn and the write retried.
func (r *modelRepository) Update(ctx context.Context, model *Model) error {
	needsSlug := model.Shared && model.ShareSlug == nil

	for attempt := 0; ; attempt++ {
		if needsSlug {
			slug := utils.GenerateSlug(model.Name)
			model.ShareSlug = &slug
		}

		err := r.db.WithContext(ctx).
			Omit("Creator", "Photos", "LogEntries", "HopUps", "Comments").
			Save(model).Error
		if err == nil {
			return nil
		}

		if needsSlug && errors.Is(err, gorm.ErrDuplicatedKey) && attempt < slugRetryLimit {
			model.ShareSlug = nil
			continue
		}

		log.Errorf("[DB] Failed to update model. Error: %s", err.Error())
		return utils.ErrDatabaseError
	}
}

// Delete removes the model and everything that belongs to it: build-log
// photo links, build logs, photos, hop-ups and comments. Returns false
// when no row was deleted. Stored photo files are the service's job.
func (r *modelRepository) Delete(ctx context.Context, model *Model) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entryIDs []uint
		if err := tx.Model(&buildlog.BuildLogEntry{}).
			Where("model_id = ?", model.ID).
			Pluck("id", &entryIDs).Error; err != nil {
			return err
		}

		if len(entryIDs) > 0 {
			if err := tx.Exec(
				"DELETE FROM build_log_photos WHERE build_log_entry_id IN ?", entryIDs,
			).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("model_id = ?", model.ID).Delete(&buildlog.BuildLogEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("model_id = ?", model.ID).Delete(&hopup.HopUpPart{}).Error; err != nil {
			return err
		}
		if err := tx.Where("model_id = ?", model.ID).Delete(&photo.Photo{}).Error; err != nil {
			return err
		}
		if err := tx.Where("model_id = ?", model.ID).Delete(&comment.ModelComment{}).Error; err != nil {
			return err
		}

		result := tx.Delete(model)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})

	if err != nil {
		log.Errorf("[DB] Failed to delete model. Error: %s", err.Error())
		return false, utils.ErrDatabaseError
	}

	return deleted, nil
}

// AggregateStats sums the model cost column only. The per-model total
// investment includes hop-up costs on top, the two figures differ for any
// user who bought upgrades.
func (r *modelRepository) AggregateStats(ctx context.Context, creatorId string) (*StatsOut, error) {
	models := make([]Model, 0)
	result := r.ownedByCreator(ctx, creatorId).
		Preload("Photos").
		Find(&models)

	if result.Error != nil {
		log.Errorf("[DB] Failed to fetch models for stats. Error: %s", result.Error.Error())
		return nil, utils.ErrDatabaseError
	}

	stats := StatsOut{TotalModels: len(models)}
	for _, model := range models {
		if model.BuildStatus == StatusBuilding {
			stats.ActiveBuilds++
		}
		stats.TotalInvestment += model.Cost
		stats.TotalPhotos += len(model.Photos)
	}

	return &stats, nil
}
