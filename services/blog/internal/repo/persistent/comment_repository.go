package persistent

import (
	"context"

	"inkwell/services/blog/internal/entity"
	"inkwell/services/blog/internal/model"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	GetByUID(ctx context.Context, uid string) (*entity.Comment, error)
	ListByPost(ctx context.Context, postUID string) ([]*entity.Comment, error)
	UpdateContent(ctx context.Context, uid, content string, updatedAt int64) error
	Delete(ctx context.Context, uid string) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	commentModel := ToCommentModel(comment)
	if err := r.db.WithContext(ctx).Create(commentModel).Error; err != nil {
		return err
	}
	*comment = *ToCommentEntity(commentModel)
	return nil
}

func (r *commentRepository) GetByUID(ctx context.Context, uid string) (*entity.Comment, error) {
	var commentModel model.CommentModel
	if err := r.db.WithContext(ctx).Where("uid = ?", uid).First(&commentModel).Error; err != nil {
		return nil, err
	}
	return ToCommentEntity(&commentModel), nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postUID string) ([]*entity.Comment, error) {
	var rows []model.CommentRow
	err := r.db.WithContext(ctx).
		Table("comments AS c").
		Select("c.*, u.name AS user_name, u.profile_image AS user_image").
		Joins("JOIN users u ON u.uid = c.user_uid").
		Where("c.post_uid = ?", postUID).
		Order("c.created_at ASC").
		Order("c.uid ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	comments := make([]*entity.Comment, len(rows))
	for i := range rows {
		comments[i] = ToCommentEntity(&rows[i].CommentModel)
		comments[i].UserName = rows[i].UserName
		comments[i].UserImage = rows[i].UserImage
	}
	return comments, nil
}

func (r *commentRepository) UpdateContent(ctx context.Context, uid, content string, updatedAt int64) error {
	result := r.db.WithContext(ctx).
		Model(&model.CommentModel{}).
		Where("uid = ?", uid).
		Updates(map[string]interface{}{"content": content, "updated_at": updatedAt})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the comment and detaches its direct replies.
func (r *commentRepository) Delete(ctx context.Context, uid string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.CommentModel{}).
			Where("parent_comment_uid = ?", uid).
			Update("parent_comment_uid", nil).Error; err != nil {
			return err
		}

		result := tx.Where("uid = ?", uid).Delete(&model.CommentModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
