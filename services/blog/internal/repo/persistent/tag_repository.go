package persistent

import (
	"context"

	"inkwell/services/blog/internal/entity"
	"inkwell/services/blog/internal/model"

	"gorm.io/gorm"
)

type TagRepository interface {
	List(ctx context.Context) ([]*entity.Tag, error)
	ExistingUIDs(ctx context.Context, uids []string) ([]string, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) List(ctx context.Context) ([]*entity.Tag, error) {
	var tagModels []model.TagModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&tagModels).Error; err != nil {
		return nil, err
	}

	tags := make([]*entity.Tag, len(tagModels))
	for i := range tagModels {
		tags[i] = ToTagEntity(&tagModels[i])
	}
	return tags, nil
}

// ExistingUIDs returns the subset of uids that name a stored tag.
func (r *tagRepository) ExistingUIDs(ctx context.Context, uids []string) ([]string, error) {
	existing := []string{}
	if len(uids) == 0 {
		return existing, nil
	}
	err := r.db.WithContext(ctx).
		Model(&model.TagModel{}).
		Where("uid IN ?", uids).
		Pluck("uid", &existing).Error
	return existing, err
}
