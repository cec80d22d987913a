package feedback

import (
	"context"
	"errors"

	"pitboxBackend/utils"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

type (
	Repository interface {
		GetAll(ctx context.Context) ([]FeedbackPost, error)
		GetByUuid(ctx context.Context, postId string) (*FeedbackPost, error)
		Create(ctx context.Context, post *FeedbackPost) error
		Delete(ctx context.Context, post *FeedbackPost) error
		CreateVote(ctx context.Context, vote *FeedbackVote) error
		DeleteVote(ctx context.Context, postID uint, userID uint) error
	}

	feedbackRepository struct {
		db *gorm.DB
	}
)

func CreateRepository(db *gorm.DB) Repository {
	return &feedbackRepository{
		db: db,
	}
}

func (r *feedbackRepository) GetAll(ctx context.Context) ([]FeedbackPost, error) {
	posts := make([]FeedbackPost, 0)
	result := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Votes").
		Order("created_at DESC").
		Find(&posts)

	if result.Error != nil {
		log.Errorf("[DB] Failed to fetch feedback posts. Error: %s", result.Error.Error())
		return nil, utils.ErrDatabaseError
	}

	return posts, nil
}

func (r *feedbackRepository) GetByUuid(ctx context.Context, postId string) (*FeedbackPost, error) {
	var post FeedbackPost
	result := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Votes").
		Where("uuid = ?", postId).
		Find(&post)

	if result.Error != nil {
		log.Errorf("[DB] Failed to fetch feedback post by UUID. Error: %s", result.Error.Error())
		return nil, utils.ErrDatabaseError
	}

	if result.RowsAffected < 1 {
		return nil, utils.ErrUuidNotFound
	}

	return &post, nil
}

func (r *feedbackRepository) Create(ctx context.Context, post *FeedbackPost) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		log.Errorf("[DB] Failed to create feedback post. Error: %s", err.Error())
		return utils.ErrDatabaseError
	}

	return nil
}

func (r *feedbackRepository) Delete(ctx context.Context, post *FeedbackPost) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&FeedbackVote{}).Error; err != nil {
			return err
		}
		return tx.Delete(post).Error
	})

	if err != nil {
		log.Errorf("[DB] Failed to delete feedback post. Error: %s", err.Error())
		return utils.ErrDatabaseError
	}

	return nil
}

// CreateVote relies on the composite unique index to reject a second vote
// from the same user, even when two requests race.
func (r *feedbackRepository) CreateVote(ctx context.Context, vote *FeedbackVote) error {
	if err := r.db.WithContext(ctx).Create(vote).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.ErrDuplicateVote
		}
		log.Errorf("[DB] Failed to create feedback vote. Error: %s", err.Error())
		return utils.ErrDatabaseError
	}

	return nil
}

func (r *feedbackRepository) DeleteVote(ctx context.Context, postID uint, userID uint) error {
	result := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&FeedbackVote{})

	if result.Error != nil {
		log.Errorf("[DB] Failed to delete feedback vote. Error: %s", result.Error.Error())
		return utils.ErrDatabaseError
	}

	if result.RowsAffected < 1 {
		return utils.ErrUuidNotFound
	}

	return nil
}
