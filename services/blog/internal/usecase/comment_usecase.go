package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"inkwell/pkg/logger"
	"inkwell/services/blog/internal/entity"
	"inkwell/services/blog/internal/repo/persistent"
)

type CommentUseCase interface {
	CreateComment(ctx context.Context, userUID, postUID, content string, parentUID *string) (*entity.Comment, error)
	ListComments(ctx context.Context, postUID string) ([]*entity.Comment, error)
	UpdateComment(ctx context.Context, actor entity.Actor, uid, content string) (*entity.Comment, error)
	DeleteComment(ctx context.Context, actor entity.Actor, uid string) error
}

type commentUseCase struct {
	commentRepo persistent.CommentRepository
	postRepo    persistent.PostRepository
	logger      *logger.Logger
	now         func() time.Time
}

func NewCommentUseCase(
	commentRepo persistent.CommentRepository,
	postRepo persistent.PostRepository,
	logger *logger.Logger,
) CommentUseCase {
	return &commentUseCase{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		logger:      logger,
		now:         time.Now,
	}
}

func (uc *commentUseCase) CreateComment(ctx context.Context, userUID, postUID, content string, parentUID *string) (*entity.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, entity.NewValidationError("Content is required")
	}

	exists, err := uc.postRepo.Exists(ctx, postUID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up post: %w", err)
	}
	if !exists {
		return nil, entity.NewNotFoundError("Post not found")
	}

	if parentUID != nil && *parentUID == "" {
		parentUID = nil
	}
	if parentUID != nil {
		parent, err := uc.commentRepo.GetByUID(ctx, *parentUID)
		if err != nil {
			return nil, notFound(err, "Parent comment not found")
		}
		if parent.PostUID != postUID {
			return nil, entity.NewValidationError("Parent comment belongs to another post")
		}
	}

	now := uc.now().Unix()
	comment := &entity.Comment{
		PostUID:          postUID,
		UserUID:          userUID,
		Content:          content,
		ParentCommentUID: parentUID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

func (uc *commentUseCase) ListComments(ctx context.Context, postUID string) ([]*entity.Comment, error) {
	exists, err := uc.postRepo.Exists(ctx, postUID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up post: %w", err)
	}
	if !exists {
		return nil, entity.NewNotFoundError("Post not found")
	}

	comments, err := uc.commentRepo.ListByPost(ctx, postUID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

func (uc *commentUseCase) UpdateComment(ctx context.Context, actor entity.Actor, uid, content string) (*entity.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, entity.NewValidationError("Content is required")
	}

	comment, err := uc.commentRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, notFound(err, "Comment not found")
	}
	if !actor.CanModify(comment.UserUID) {
		return nil, entity.NewForbiddenError("Not authorized to update this comment")
	}

	now := uc.now().Unix()
	if err := uc.commentRepo.UpdateContent(ctx, uid, content, now); err != nil {
		return nil, notFound(err, "Comment not found")
	}

	comment.Content = content
	comment.UpdatedAt = now
	return comment, nil
}

func (uc *commentUseCase) DeleteComment(ctx context.Context, actor entity.Actor, uid string) error {
	comment, err := uc.commentRepo.GetByUID(ctx, uid)
	if err != nil {
		return notFound(err, "Comment not found")
	}
	if !actor.CanModify(comment.UserUID) {
		return entity.NewForbiddenError("Not authorized to delete this comment")
	}

	if err := uc.commentRepo.Delete(ctx, uid); err != nil {
		return notFound(err, "Comment not found")
	}
	return nil
}
