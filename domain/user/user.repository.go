package user

import (
	"context"
	"errors"

	"pitboxBackend/utils"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

type (
	Repository interface {
		GetAll(ctx context.Context) ([]User, error)
		GetByUuid(ctx context.Context, userId string) (*User, error)
		GetByEmail(ctx context.Context, email string) (*User, error)
		GetBySub(ctx context.Context, sub string) (*User, bool, error)
		Create(ctx context.Context, user *User) error
		Update(ctx context.Context, user *User) error
		Delete(ctx context.Context, user *User) error
	}

	userRepository struct {
		db *gorm.DB
	}
)

func CreateRepository(db *gorm.DB) Repository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) GetAll(ctx context.Context) ([]User, error) {
	users := make([]User, 0)
	result := r.db.WithContext(ctx).Order("created_at").Find(&users)

	if result.Error != nil {
		log.Errorf("[DB] Failed to fetch all users. Error: %s", result.Error.Error())
		return nil, utils.ErrDatabaseError
	}

	return users, nil
}

func (r *userRepository) GetByUuid(ctx context.Context, userId string) (*User, error) {
	var user User
	result := r.db.WithContext(ctx).Where("uuid = ?", userId).Find(&user)

	if result.Error != nil {
		log.Errorf("[DB] Failed to fetch user by UUID. Error: %s", result.Error.Error())
		return nil, utils.ErrDatabaseError
	}

	if result.RowsAffected < 1 {
		return nil, utils.ErrUuidNotFound
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	result := r.db.WithContext(ctx).Where("email = ?", email).Find(&user)

	if result.Error != nil {
		log.Errorf("[DB] Failed to fetch user by email. Error: %s", result.Error.Error())
		return nil, utils.ErrDatabaseError
	}

	if result.RowsAffected < 1 {
		return nil, utils.ErrUuidNotFound
	}

	return &user, nil
}

func (r *userRepository) GetBySub(ctx context.Context, sub string) (*User, bool, error) {
	var user User
	result := r.db.WithContext(ctx).Where("sub = ?", sub).Find(&user)

	if result.Error != nil {
		log.Errorf("[DB] Failed to fetch user by sub. Error: %s", result.Error.Error())
		return nil, false, utils.ErrDatabaseError
	}

	return &user, result.RowsAffected > 0, nil
}

func (r *userRepository) Create(ctx context.Context, user *User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.ErrEmailTaken
		}

		log.Errorf("[DB] Failed to create user. Error: %s", err.Error())
		return utils.ErrDatabaseError
	}

	return nil
}

func (r *userRepository) Update(ctx context.Context, user *User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		log.Errorf("[DB] Failed to update user. Error: %s", err.Error())
		return utils.ErrDatabaseError
	}

	return nil
}

func (r *userRepository) Delete(ctx context.Context, user *User) error {
	// Admin deletion is permanent. A soft delete would keep the email's
	// unique index occupied and block the address from registering again.
	if err := r.db.WithContext(ctx).Unscoped().Delete(user).Error; err != nil {
		log.Errorf("[DB] Failed to delete user. Error: %s", err.Error())
		return utils.ErrDatabaseError
	}

	return nil
}
