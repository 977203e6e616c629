package persistent

import (
	"context"
	"encoding/json"

	"inkwell/services/blog/internal/entity"
	"inkwell/services/blog/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByUID(ctx context.Context, uid string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, uid string, changes entity.UserUpdate, updatedAt int64) error
	CreatePasswordReset(ctx context.Context, reset *entity.PasswordReset) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	userModel, err := ToUserModel(user)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(userModel).Error; err != nil {
		if IsUniqueViolation(err) {
			return entity.NewConflictError("User already exists")
		}
		return err
	}
	*user = *ToUserEntity(userModel)
	return nil
}

func (r *userRepository) GetByUID(ctx context.Context, uid string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.WithContext(ctx).Where("uid = ?", uid).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) Update(ctx context.Context, uid string, changes entity.UserUpdate, updatedAt int64) error {
	updates := map[string]interface{}{"updated_at": updatedAt}
	if changes.Name != nil {
		updates["name"] = *changes.Name
	}
	if changes.Bio != nil {
		updates["bio"] = *changes.Bio
	}
	if changes.ProfileImage != nil {
		updates["profile_image"] = *changes.ProfileImage
	}
	if changes.SocialLinks != nil {
		links, err := json.Marshal(changes.SocialLinks)
		if err != nil {
			return err
		}
		updates["social_links"] = links
	}

	result := r.db.WithContext(ctx).Model(&model.UserModel{}).Where("uid = ?", uid).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepository) CreatePasswordReset(ctx context.Context, reset *entity.PasswordReset) error {
	return r.db.WithContext(ctx).Create(ToPasswordResetModel(reset)).Error
}
