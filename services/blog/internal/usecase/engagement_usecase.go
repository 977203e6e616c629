package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"inkwell/pkg/logger"
	"inkwell/services/blog/internal/entity"
	"inkwell/services/blog/internal/repo/persistent"
)

// maxClapIncrement is the largest increment accepted in one request.
const maxClapIncrement = math.MaxInt32

type EngagementUseCase interface {
	AddClap(ctx context.Context, userUID, postUID string, increment int) (*entity.Clap, int64, error)
	AddBookmark(ctx context.Context, userUID, postUID string) (bool, error)
	RemoveBookmark(ctx context.Context, userUID, postUID string) error
	ListBookmarks(ctx context.Context, userUID string, filter entity.PostFilter) ([]*entity.Post, error)
}

type engagementUseCase struct {
	engagementRepo persistent.EngagementRepository
	postRepo       persistent.PostRepository
	logger         *logger.Logger
	now            func() time.Time
}

func NewEngagementUseCase(
	engagementRepo persistent.EngagementRepository,
	postRepo persistent.PostRepository,
	logger *logger.Logger,
) EngagementUseCase {
	return &engagementUseCase{
		engagementRepo: engagementRepo,
		postRepo:       postRepo,
		logger:         logger,
		now:            time.Now,
	}
}

// AddClap adds increment claps (1 when zero) and returns the user's row
// together with the post's new total.
func (uc *engagementUseCase) AddClap(ctx context.Context, userUID, postUID string, increment int) (*entity.Clap, int64, error) {
	if postUID == "" {
		return nil, 0, entity.NewValidationError("post_uid is required")
	}
	if increment < 0 {
		return nil, 0, entity.NewValidationError("Increment must be positive")
	}
	if increment > maxClapIncrement {
		return nil, 0, entity.NewValidationError("Increment is too large")
	}
	if increment == 0 {
		increment = 1
	}

	if err := uc.requirePost(ctx, postUID); err != nil {
		return nil, 0, err
	}

	clap, err := uc.engagementRepo.AddClaps(ctx, userUID, postUID, increment, uc.now().Unix())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to add clap: %w", err)
	}

	total, err := uc.engagementRepo.ClapTotal(ctx, postUID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count claps: %w", err)
	}
	return clap, total, nil
}

func (uc *engagementUseCase) AddBookmark(ctx context.Context, userUID, postUID string) (bool, error) {
	if postUID == "" {
		return false, entity.NewValidationError("post_uid is required")
	}
	if err := uc.requirePost(ctx, postUID); err != nil {
		return false, err
	}

	created, err := uc.engagementRepo.AddBookmark(ctx, userUID, postUID, uc.now().Unix())
	if err != nil {
		return false, fmt.Errorf("failed to add bookmark: %w", err)
	}
	return created, nil
}

func (uc *engagementUseCase) RemoveBookmark(ctx context.Context, userUID, postUID string) error {
	if postUID == "" {
		return entity.NewValidationError("post_uid is required")
	}

	removed, err := uc.engagementRepo.RemoveBookmark(ctx, userUID, postUID)
	if err != nil {
		return fmt.Errorf("failed to remove bookmark: %w", err)
	}
	if !removed {
		uc.logger.Info("Bookmark for user %s on post %s was already absent", userUID, postUID)
	}
	return nil
}

func (uc *engagementUseCase) ListBookmarks(ctx context.Context, userUID string, filter entity.PostFilter) ([]*entity.Post, error) {
	posts, err := uc.postRepo.ListBookmarked(ctx, userUID, filter.Normalize())
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	return posts, nil
}

func (uc *engagementUseCase) requirePost(ctx context.Context, postUID string) error {
	exists, err := uc.postRepo.Exists(ctx, postUID)
	if err != nil {
		return fmt.Errorf("failed to look up post: %w", err)
	}
	if !exists {
		return entity.NewNotFoundError("Post not found")
	}
	return nil
}
