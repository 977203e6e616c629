package usecase

import (
	"context"
	"fmt"

	"inkwell/services/blog/internal/entity"
	"inkwell/services/blog/internal/repo/persistent"
)

type TagUseCase interface {
	ListTags(ctx context.Context) ([]*entity.Tag, error)
}

type tagUseCase struct {
	tagRepo persistent.TagRepository
}

func NewTagUseCase(tagRepo persistent.TagRepository) TagUseCase {
	return &tagUseCase{tagRepo: tagRepo}
}

func (uc *tagUseCase) ListTags(ctx context.Context) ([]*entity.Tag, error) {
	tags, err := uc.tagRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}
