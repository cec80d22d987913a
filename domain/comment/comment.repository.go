package comment

import (
	"context"

	"pitboxBackend/utils"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

type (
	Repository interface {
		GetAllForModel(ctx context.Context, modelID uint) ([]ModelComment, error)
		GetByUuid(ctx context.Context, commentId string) (*ModelComment, error)
		Create(ctx context.Context, comment *ModelComment) error
		Delete(ctx context.Context, comment *ModelComment) error
	}

	commentRepository struct {
		db *gorm.DB
	}
)

func CreateRepository(db *gorm.DB) Repository {
	return &commentRepository{
		db: db,
	}
}

func (r *commentRepository) GetAllForModel(ctx context.Context, modelID uint) ([]ModelComment, error) {
	comments := make([]ModelComment, 0)
	result := r.db.WithContext(ctx).
		Preload("Author").
		Where("model_id = ?", modelID).
		Order("created_at").
		Find(&comments)

	if result.Error != nil {
		log.Errorf("[DB] Failed to fetch comments. Error: %s", result.Error.Error())
		return nil, utils.ErrDatabaseError
	}

	return comments, nil
}

func (r *commentRepository) GetByUuid(ctx context.Context, commentId string) (*ModelComment, error) {
	var comment ModelComment
	result := r.db.WithContext(ctx).
		Preload("Author").
		Where("uuid = ?", commentId).
		Find(&comment)

	if result.Error != nil {
		log.Errorf("[DB] Failed to fetch comment by UUID. Error: %s", result.Error.Error())
		return nil, utils.ErrDatabaseError
	}

	if result.RowsAffected < 1 {
		return nil, utils.ErrUuidNotFound
	}

	return &comment, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *ModelComment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		log.Errorf("[DB] Failed to create comment. Error: %s", err.Error())
		return utils.ErrDatabaseError
	}

	return nil
}

func (r *commentRepository) Delete(ctx context.Context, comment *ModelComment) error {
	if err := r.db.WithContext(ctx).Delete(comment).Error; err != nil {
		log.Errorf("[DB] Failed to delete comment. Error: %s", err.Error())
		return utils.ErrDatabaseError
	}

	return nil
}
