package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"inkwell/pkg/logger"
	"inkwell/pkg/queue"
	"inkwell/services/blog/internal/entity"
	"inkwell/services/blog/internal/repo/persistent"

	"github.com/google/uuid"
)

var allowedImageExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

type PostUseCase interface {
	CreatePost(ctx context.Context, authorUID string, input entity.PostInput) (*entity.Post, error)
	GetPost(ctx context.Context, uid string) (*entity.Post, error)
	ListPosts(ctx context.Context, filter entity.PostFilter) ([]*entity.Post, error)
	UpdatePost(ctx context.Context, actor entity.Actor, uid string, changes entity.PostUpdate) (*entity.Post, error)
	SetPostTags(ctx context.Context, actor entity.Actor, uid string, tags *[]string) ([]string, error)
	DeletePost(ctx context.Context, actor entity.Actor, uid string) error
	UploadFeaturedImage(ctx context.Context, userUID, filename, contentType string, body io.Reader) (string, error)
}

type postUseCase struct {
	postRepo   persistent.PostRepository
	tagRepo    persistent.TagRepository
	storage    ImageStorage
	publisher  EventPublisher
	strictTags bool
	logger     *logger.Logger
	now        func() time.Time
}

func NewPostUseCase(
	postRepo persistent.PostRepository,
	tagRepo persistent.TagRepository,
	storage ImageStorage,
	publisher EventPublisher,
	strictTags bool,
	logger *logger.Logger,
) PostUseCase {
	return &postUseCase{
		postRepo:   postRepo,
		tagRepo:    tagRepo,
		storage:    storage,
		publisher:  publisher,
		strictTags: strictTags,
		logger:     logger,
		now:        time.Now,
	}
}

func (uc *postUseCase) CreatePost(ctx context.Context, authorUID string, input entity.PostInput) (*entity.Post, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" {
		return nil, entity.NewValidationError("Title and content are required")
	}

	status := input.Status
	if status == "" {
		status = entity.StatusDraft
	}
	if !status.Valid() {
		return nil, entity.NewValidationError("Status must be draft or published")
	}

	tags := entity.DedupeTags(input.Tags)
	if err := uc.checkTags(ctx, tags); err != nil {
		return nil, err
	}

	now := uc.now().Unix()
	post := &entity.Post{
		Title:         input.Title,
		Content:       input.Content,
		AuthorUID:     authorUID,
		Status:        status,
		FeaturedImage: input.FeaturedImage,
		CreatedAt:     now,
		UpdatedAt:     now,
		Tags:          tags,
	}

	if err := uc.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	if post.Status == entity.StatusPublished {
		uc.publishPost(post)
	}

	return post, nil
}

func (uc *postUseCase) GetPost(ctx context.Context, uid string) (*entity.Post, error) {
	post, err := uc.postRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, notFound(err, "Post not found")
	}
	return post, nil
}

func (uc *postUseCase) ListPosts(ctx context.Context, filter entity.PostFilter) ([]*entity.Post, error) {
	posts, err := uc.postRepo.ListPublished(ctx, filter.Normalize())
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

func (uc *postUseCase) UpdatePost(ctx context.Context, actor entity.Actor, uid string, changes entity.PostUpdate) (*entity.Post, error) {
	post, err := uc.postRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, notFound(err, "Post not found")
	}
	if !actor.CanModify(post.AuthorUID) {
		return nil, entity.NewForbiddenError("Not authorized to update this post")
	}

	if changes.Title != nil && strings.TrimSpace(*changes.Title) == "" {
		return nil, entity.NewValidationError("Title cannot be empty")
	}
	if changes.Content != nil && strings.TrimSpace(*changes.Content) == "" {
		return nil, entity.NewValidationError("Content cannot be empty")
	}
	if changes.Status != nil && !changes.Status.Valid() {
		return nil, entity.NewValidationError("Status must be draft or published")
	}
	if changes.Tags != nil {
		tags := entity.DedupeTags(*changes.Tags)
		if err := uc.checkTags(ctx, tags); err != nil {
			return nil, err
		}
		changes.Tags = &tags
	}

	if err := uc.postRepo.Update(ctx, uid, changes, uc.now().Unix()); err != nil {
		return nil, notFound(err, "Post not found")
	}

	updated, err := uc.postRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, notFound(err, "Post not found")
	}

	if post.Status != entity.StatusPublished && updated.Status == entity.StatusPublished {
		uc.publishPost(updated)
	}

	return updated, nil
}

// SetPostTags replaces the post's tag set. A nil tags pointer leaves the set
// untouched and returns it.
func (uc *postUseCase) SetPostTags(ctx context.Context, actor entity.Actor, uid string, tags *[]string) ([]string, error) {
	post, err := uc.postRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, notFound(err, "Post not found")
	}
	if !actor.CanModify(post.AuthorUID) {
		return nil, entity.NewForbiddenError("Not authorized to update this post")
	}

	if tags == nil {
		return post.Tags, nil
	}

	deduped := entity.DedupeTags(*tags)
	if err := uc.checkTags(ctx, deduped); err != nil {
		return nil, err
	}
	if err := uc.postRepo.SetTags(ctx, uid, deduped); err != nil {
		return nil, fmt.Errorf("failed to set post tags: %w", err)
	}
	return deduped, nil
}

func (uc *postUseCase) DeletePost(ctx context.Context, actor entity.Actor, uid string) error {
	post, err := uc.postRepo.GetByUID(ctx, uid)
	if err != nil {
		return notFound(err, "Post not found")
	}
	if !actor.CanModify(post.AuthorUID) {
		return entity.NewForbiddenError("Not authorized to delete this post")
	}

	if err := uc.postRepo.Delete(ctx, uid); err != nil {
		return notFound(err, "Post not found")
	}
	return nil
}

func (uc *postUseCase) UploadFeaturedImage(ctx context.Context, userUID, filename, contentType string, body io.Reader) (string, error) {
	if uc.storage == nil {
		return "", fmt.Errorf("image storage is not configured")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	defaultType, ok := allowedImageExtensions[ext]
	if !ok {
		return "", entity.NewValidationError("Unsupported image type")
	}
	if contentType == "" {
		contentType = defaultType
	}

	key := fmt.Sprintf("posts/%s/%s%s", userUID, uuid.New().String(), ext)
	url, err := uc.storage.UploadFile(key, body, contentType)
	if err != nil {
		return "", err
	}
	return url, nil
}

// checkTags rejects unknown tag ids when the strict tag policy is on.
func (uc *postUseCase) checkTags(ctx context.Context, tags []string) error {
	if !uc.strictTags || len(tags) == 0 {
		return nil
	}

	existing, err := uc.tagRepo.ExistingUIDs(ctx, tags)
	if err != nil {
		return fmt.Errorf("failed to check tags: %w", err)
	}
	known := make(map[string]struct{}, len(existing))
	for _, uid := range existing {
		known[uid] = struct{}{}
	}

	var unknown []string
	for _, tag := range tags {
		if _, ok := known[tag]; !ok {
			unknown = append(unknown, tag)
		}
	}
	if len(unknown) > 0 {
		return entity.NewValidationError("Unknown tags: " + strings.Join(unknown, ", "))
	}
	return nil
}

func (uc *postUseCase) publishPost(post *entity.Post) {
	if uc.publisher == nil {
		return
	}

	event := map[string]interface{}{
		"type":       "post_published",
		"post_uid":   post.UID,
		"author_uid": post.AuthorUID,
		"title":      post.Title,
		"tags":       post.Tags,
		"created_at": post.CreatedAt,
	}
	go func() {
		if err := uc.publisher.Publish(queue.RoutingPostPublished, event); err != nil {
			uc.logger.Warn("Failed to publish post_published for post %s: %v", post.UID, err)
		}
	}()
}
