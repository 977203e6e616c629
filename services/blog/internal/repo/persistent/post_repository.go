package persistent

import (
	"context"
	"strings"

	"inkwell/services/blog/internal/entity"
	"inkwell/services/blog/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	postListColumns = "p.*, u.name AS author_name, u.profile_image AS author_image, " +
		"COALESCE((SELECT SUM(c.clap_count) FROM claps c WHERE c.post_uid = p.uid), 0)::BIGINT AS clap_total"
	postDetailColumns = postListColumns + ", u.email AS author_email, u.bio AS author_bio"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	GetByUID(ctx context.Context, uid string) (*entity.Post, error)
	Exists(ctx context.Context, uid string) (bool, error)
	ListPublished(ctx context.Context, filter entity.PostFilter) ([]*entity.Post, error)
	ListBookmarked(ctx context.Context, userUID string, filter entity.PostFilter) ([]*entity.Post, error)
	Update(ctx context.Context, uid string, changes entity.PostUpdate, updatedAt int64) error
	GetTags(ctx context.Context, postUID string) ([]string, error)
	SetTags(ctx context.Context, postUID string, tags []string) error
	Delete(ctx context.Context, uid string) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts the post and links its tags in one transaction.
func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	postModel := ToPostModel(post)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(postModel).Error; err != nil {
			return err
		}
		tags := entity.DedupeTags(post.Tags)
		if err := insertTags(tx, postModel.UID, tags); err != nil {
			return err
		}

		*post = *ToPostEntity(postModel)
		post.Tags = tags
		return nil
	})
}

func (r *postRepository) GetByUID(ctx context.Context, uid string) (*entity.Post, error) {
	var row model.PostRow
	err := r.db.WithContext(ctx).
		Table("posts AS p").
		Select(postDetailColumns).
		Joins("JOIN users u ON u.uid = p.author_uid").
		Where("p.uid = ?", uid).
		Take(&row).Error
	if err != nil {
		return nil, err
	}

	post := rowToPostDetail(&row)

	tags, err := r.GetTags(ctx, uid)
	if err != nil {
		return nil, err
	}
	post.Tags = tags
	return post, nil
}

func (r *postRepository) Exists(ctx context.Context, uid string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.PostModel{}).Where("uid = ?", uid).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *postRepository) ListPublished(ctx context.Context, filter entity.PostFilter) ([]*entity.Post, error) {
	var rows []model.PostRow
	if err := listPublishedQuery(r.db.WithContext(ctx), filter.Normalize()).Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.withTags(ctx, rows)
}

// ListBookmarked returns the posts bookmarked by userUID that the user can
// see, newest bookmark first.
func (r *postRepository) ListBookmarked(ctx context.Context, userUID string, filter entity.PostFilter) ([]*entity.Post, error) {
	filter = filter.Normalize()

	var rows []model.PostRow
	err := r.db.WithContext(ctx).
		Table("posts AS p").
		Select(postListColumns).
		Joins("JOIN users u ON u.uid = p.author_uid").
		Joins("JOIN bookmarks b ON b.post_uid = p.uid AND b.user_uid = ?", userUID).
		Where("(p.status = ? OR p.author_uid = ?)", string(entity.StatusPublished), userUID).
		Order("b.created_at DESC").
		Order("p.uid DESC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.withTags(ctx, rows)
}

// Update applies the non-nil fields of changes. When changes.Tags is set
// the tag set is replaced inside the same transaction.
func (r *postRepository) Update(ctx context.Context, uid string, changes entity.PostUpdate, updatedAt int64) error {
	updates := map[string]interface{}{"updated_at": updatedAt}
	if changes.Title != nil {
		updates["title"] = *changes.Title
	}
	if changes.Content != nil {
		updates["content"] = *changes.Content
	}
	if changes.Status != nil {
		updates["status"] = string(*changes.Status)
	}
	if changes.FeaturedImage != nil {
		updates["featured_image"] = *changes.FeaturedImage
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.PostModel{}).Where("uid = ?", uid).Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if changes.Tags != nil {
			return replaceTags(tx, uid, entity.DedupeTags(*changes.Tags))
		}
		return nil
	})
}

func (r *postRepository) GetTags(ctx context.Context, postUID string) ([]string, error) {
	byPost, err := tagsForPosts(r.db.WithContext(ctx), []string{postUID})
	if err != nil {
		return nil, err
	}
	if tags, ok := byPost[postUID]; ok {
		return tags, nil
	}
	return []string{}, nil
}

// SetTags makes tags the complete tag set of the post.
func (r *postRepository) SetTags(ctx context.Context, postUID string, tags []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return replaceTags(tx, postUID, entity.DedupeTags(tags))
	})
}

// Delete removes the post together with everything that references it.
func (r *postRepository) Delete(ctx context.Context, uid string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dependents := []interface{}{
			&model.PostTagModel{},
			&model.ClapModel{},
			&model.BookmarkModel{},
			&model.CommentModel{},
		}
		for _, dependent := range dependents {
			if err := tx.Where("post_uid = ?", uid).Delete(dependent).Error; err != nil {
				return err
			}
		}

		result := tx.Where("uid = ?", uid).Delete(&model.PostModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *postRepository) withTags(ctx context.Context, rows []model.PostRow) ([]*entity.Post, error) {
	posts := make([]*entity.Post, len(rows))
	uids := make([]string, len(rows))
	for i := range rows {
		posts[i] = rowToPostEntity(&rows[i])
		uids[i] = rows[i].UID
	}
	if len(rows) == 0 {
		return posts, nil
	}

	byPost, err := tagsForPosts(r.db.WithContext(ctx), uids)
	if err != nil {
		return nil, err
	}
	for _, post := range posts {
		if tags, ok := byPost[post.UID]; ok {
			post.Tags = tags
		}
	}
	return posts, nil
}

// listPublishedQuery builds the public listing: published posts filtered by
// an optional search term and tag, newest first with uid as tie-break.
func listPublishedQuery(db *gorm.DB, filter entity.PostFilter) *gorm.DB {
	query := db.Table("posts AS p").
		Select(postListColumns).
		Joins("JOIN users u ON u.uid = p.author_uid").
		Where("p.status = ?", string(entity.StatusPublished))

	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		query = query.Where("(p.title ILIKE ? OR p.content ILIKE ?)", pattern, pattern)
	}
	if filter.Tag != "" {
		query = query.Where("p.uid IN (SELECT post_uid FROM posts_tags WHERE tag_uid = ?)", filter.Tag)
	}

	return query.
		Order("p.created_at DESC").
		Order("p.uid DESC").
		Limit(filter.Limit).
		Offset(filter.Offset())
}

// tagsForPosts loads the tag ids of every given post in one query.
func tagsForPosts(db *gorm.DB, postUIDs []string) (map[string][]string, error) {
	var links []model.PostTagModel
	if err := db.Where("post_uid IN ?", postUIDs).Order("post_uid, tag_uid").Find(&links).Error; err != nil {
		return nil, err
	}

	byPost := make(map[string][]string, len(postUIDs))
	for _, link := range links {
		byPost[link.PostUID] = append(byPost[link.PostUID], link.TagUID)
	}
	return byPost, nil
}

func replaceTags(tx *gorm.DB, postUID string, tags []string) error {
	if err := tx.Where("post_uid = ?", postUID).Delete(&model.PostTagModel{}).Error; err != nil {
		return err
	}
	return insertTags(tx, postUID, tags)
}

func insertTags(tx *gorm.DB, postUID string, tags []string) error {
	if len(tags) == 0 {
		return nil
	}
	links := make([]model.PostTagModel, len(tags))
	for i, tag := range tags {
		links[i] = model.PostTagModel{PostUID: postUID, TagUID: tag}
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes term match literally inside an ILIKE pattern.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
